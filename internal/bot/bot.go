// Package bot is the chat-command management transport: it long-polls the
// Telegram Bot API and maps commands onto the registry and scheduler.
package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/manybotts/PingerB/internal/domain"
	"github.com/manybotts/PingerB/internal/notify"
	"github.com/manybotts/PingerB/internal/registry"
	"github.com/manybotts/PingerB/internal/scheduler"
)

const helpText = `Commands:
/add <url> - register an app for pinging
/remove <url> - stop pinging an app
/list - show registered apps
/ping <interval_minutes> - get UP/DOWN reports here every N minutes
/help - this message`

type Bot struct {
	Logger    *zap.Logger
	Registry  *registry.Registry
	Scheduler *scheduler.Manager
	Notifier  *notify.Telegram

	PollTimeout time.Duration

	client *http.Client
	offset int64
}

func New(log *zap.Logger, reg *registry.Registry, sched *scheduler.Manager, tg *notify.Telegram) *Bot {
	return &Bot{
		Logger:      log,
		Registry:    reg,
		Scheduler:   sched,
		Notifier:    tg,
		PollTimeout: 30 * time.Second,
		// long poll: requests are expected to hang up to PollTimeout
		client: &http.Client{Timeout: 45 * time.Second},
	}
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

type updatesResponse struct {
	OK     bool     `json:"ok"`
	Result []update `json:"result"`
}

// Run polls for updates until ctx is done. Poll failures are logged and
// retried after a short pause.
func (b *Bot) Run(ctx context.Context) {
	b.Logger.Info("bot_started")
	for {
		select {
		case <-ctx.Done():
			b.Logger.Info("bot_stopped")
			return
		default:
		}

		updates, err := b.getUpdates(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				continue
			}
			b.Logger.Warn("poll_error", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(3 * time.Second):
			}
			continue
		}

		for _, u := range updates {
			b.offset = u.UpdateID + 1
			if u.Message == nil || u.Message.Text == "" {
				continue
			}
			chat := strconv.FormatInt(u.Message.Chat.ID, 10)
			reply := b.Handle(ctx, chat, u.Message.Text)
			if reply == "" {
				continue
			}
			if err := b.Notifier.Send(ctx, chat, reply); err != nil {
				b.Logger.Warn("reply_error", zap.String("chat", chat), zap.Error(err))
			}
		}
	}
}

func (b *Bot) getUpdates(ctx context.Context) ([]update, error) {
	q := url.Values{}
	q.Set("offset", strconv.FormatInt(b.offset, 10))
	q.Set("timeout", strconv.Itoa(int(b.PollTimeout/time.Second)))
	u := fmt.Sprintf("%s/bot%s/getUpdates?%s", b.Notifier.APIBase, b.Notifier.Token, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("getUpdates status %d", resp.StatusCode)
	}

	var out updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, errors.New("getUpdates not ok")
	}
	return out.Result, nil
}

// Handle dispatches one command and returns the reply text. Unknown input
// yields an empty reply.
func (b *Bot) Handle(ctx context.Context, chat, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	cmd := fields[0]
	// commands in groups arrive as /cmd@BotName
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}

	switch cmd {
	case "/start", "/help":
		return helpText

	case "/list":
		urls := b.Registry.List(ctx)
		if len(urls) == 0 {
			return "No apps registered."
		}
		return strings.Join(urls, "\n")

	case "/add":
		if len(fields) < 2 {
			return "Usage: /add <url>"
		}
		u, err := b.Registry.Add(ctx, fields[1])
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			return "App already exists."
		case err != nil:
			b.Logger.Error("bot_add_error", zap.String("url", u), zap.Error(err))
			return "Could not add app, try again later."
		}
		return "Added " + u + " for pinging."

	case "/remove":
		if len(fields) < 2 {
			return "Usage: /remove <url>"
		}
		err := b.Registry.Remove(ctx, fields[1])
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return "App not found."
		case err != nil:
			b.Logger.Error("bot_remove_error", zap.String("url", fields[1]), zap.Error(err))
			return "Could not remove app, try again later."
		}
		return "Removed " + registry.Normalize(fields[1]) + " from pinging."

	case "/ping":
		if len(fields) < 2 {
			return "Usage: /ping <interval_minutes>"
		}
		minutes, err := strconv.Atoi(fields[1])
		if err != nil || minutes <= 0 {
			return "Usage: /ping <interval_minutes> (a positive number)"
		}
		if err := b.Scheduler.Schedule(domain.SubscriberID(chat), time.Duration(minutes)*time.Minute); err != nil {
			return "Usage: /ping <interval_minutes> (a positive number)"
		}
		return fmt.Sprintf("Pinging every %d minute(s). Reports will arrive here.", minutes)
	}
	return ""
}
