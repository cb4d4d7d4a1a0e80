// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	mode := strings.TrimSpace(os.Getenv("PREFLIGHT_MODE")) // "bot" or "api"
	token := strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN"))
	addr := strings.TrimSpace(os.Getenv("ADDR"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))
	webhook := strings.TrimSpace(os.Getenv("SLACK_WEBHOOK"))

	if mode == "bot" && token == "" {
		fail("TELEGRAM_TOKEN is empty (cmd/bot refuses to start without it).")
	}
	if token != "" {
		ok("TELEGRAM_TOKEN present")
	}

	if addr == "" {
		warn("ADDR is empty; the default bind address will be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if db == "" {
		warn("DATABASE_URL empty — registered apps live in memory and are lost on restart.")
	} else {
		ok("DATABASE_URL present")
	}

	if origins == "" {
		warn("ALLOWED_ORIGINS empty — the API will allow all origins.")
	} else {
		ok("ALLOWED_ORIGINS=" + origins)
	}

	if webhook == "" {
		warn("SLACK_WEBHOOK empty — no ops notification channel for the API variant.")
	}

	ok("preflight passed")
}
