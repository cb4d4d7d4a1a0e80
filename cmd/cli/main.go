package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter a site URL to ping (e.g., https://example.com), or blank to just list: ")
	raw, _ := reader.ReadString('\n')
	raw = strings.TrimSpace(raw)

	if raw != "" {
		body, _ := json.Marshal(map[string]string{"url": raw})
		resp, err := http.Post(api+"/apps", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Println("Error contacting API:", err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			fmt.Println("Added!")
		} else {
			fmt.Println("API returned status:", resp.Status)
		}
	}

	resp, err := http.Get(api + "/apps")
	if err != nil {
		fmt.Println("Error listing apps:", err)
		return
	}
	defer resp.Body.Close()

	var urls []string
	if err := json.NewDecoder(resp.Body).Decode(&urls); err != nil {
		fmt.Println("Bad response:", err)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "URL"})
	for i, u := range urls {
		t.AppendRow(table.Row{i + 1, u})
	}
	t.Render()
}
