package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"echo-widget/internal/config"
	"echo-widget/internal/dispatch"
	app_errors "echo-widget/internal/errors"
	"echo-widget/internal/model"
	"echo-widget/internal/placeholder"
	"echo-widget/internal/widget"
)

const quitCommand = "/quit"

func init() {
	chatCmd.Flags().String("webhook", "", "override the webhook URL of the resolved configuration")
	chatCmd.Flags().Bool("no-animate", false, "show the placeholder statically")
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat [record-id]",
	Short: "Start an interactive chat session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		id := recordID(cmd, args)

		widgetCfg, _ := newResolver(cfg).Resolve(cmd.Context(), id)
		if webhook, _ := cmd.Flags().GetString("webhook"); webhook != "" {
			// The remote overlay may carry its own webhook; the flag wins.
			widgetCfg.WebhookURL = webhook
		}

		animator := placeholder.NewAnimator(placeholder.Timings{
			Type:              cfg.PlaceholderType,
			PauseAfterTyping:  cfg.PlaceholderPauseAfterTyping,
			Erase:             cfg.PlaceholderErase,
			PauseAfterErasing: cfg.PlaceholderPauseAfterErasing,
		})
		sess := widget.NewSession(uuid.NewString(), id, widgetCfg,
			dispatch.NewDispatcher(&http.Client{}, cfg.DispatchTimeout),
			widget.Options{Animator: animator})
		defer sess.Close()

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          promptFor(widgetCfg.InputPlaceholder.Static()),
			HistoryLimit:    200,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		defer rl.Close()

		sh := &shell{
			session: sess,
			in:      rl,
			out:     rl.Stdout(),
			prompt:  rl,
		}
		if noAnimate, _ := cmd.Flags().GetBool("no-animate"); noAnimate {
			sh.prompt = nil
		}
		return sh.run(cmd.Context())
	},
}

// lineReader is satisfied by *readline.Instance.
type lineReader interface {
	Readline() (string, error)
}

// promptSetter is satisfied by *readline.Instance.
type promptSetter interface {
	SetPrompt(string)
	Refresh()
}

// shell is the terminal widget: it prints the transcript as it grows and
// animates the placeholder in the prompt while waiting for input.
type shell struct {
	session *widget.Session
	in      lineReader
	out     io.Writer
	prompt  promptSetter // Nil disables the placeholder animation.

	pendingInterval time.Duration
}

func (s *shell) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := s.session.Config()
	for _, msg := range s.session.History() {
		s.printMessage(cfg.BotName, msg)
	}

	for {
		stopAnimation := s.animatePrompt()
		line, err := s.in.Readline()
		stopAnimation()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == quitCommand {
			return nil
		}
		if line == "" {
			continue
		}

		stopDots := s.showPending(cfg.BotName)
		msg, err := s.session.Send(ctx, line)
		stopDots()
		if errors.Is(err, app_errors.ErrValidation) || errors.Is(err, app_errors.ErrConflict) {
			continue
		}
		if err != nil {
			return err
		}
		s.printMessage(cfg.BotName, msg)
	}
}

func (s *shell) printMessage(botName string, msg model.Message) {
	if msg.Role == model.RoleUser {
		return // Already echoed by the terminal.
	}
	fmt.Fprintf(s.out, "%s: %s\n", botName, msg.Content)
}

// animatePrompt cycles the placeholder candidates through the prompt until
// the returned function is called.
func (s *shell) animatePrompt() func() {
	if s.prompt == nil {
		return func() {}
	}
	stop, err := s.session.StartPlaceholder(func(frame string) {
		s.prompt.SetPrompt(promptFor(frame))
		s.prompt.Refresh()
	})
	if err != nil {
		return func() {}
	}
	return func() {
		stop()
		s.prompt.SetPrompt(promptFor(s.session.Config().InputPlaceholder.Static()))
	}
}

// showPending prints the pending indicator while a reply is outstanding.
func (s *shell) showPending(botName string) func() {
	interval := s.pendingInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		last := ""
		for {
			select {
			case <-stop:
				if last != "" {
					fmt.Fprint(s.out, "\r\033[K")
				}
				return
			case <-ticker.C:
				if p := s.session.Transcript().Pending; p != nil && p.Content != last {
					last = p.Content
					fmt.Fprintf(s.out, "\r\033[K%s: %s", botName, last)
				}
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
		})
	}
}

func promptFor(placeholder string) string {
	if placeholder == "" {
		return "> "
	}
	return fmt.Sprintf("\033[2m%s\033[0m > ", placeholder)
}
