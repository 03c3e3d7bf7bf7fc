package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bhavuklabs/geminiclient/gemini"
	"github.com/bhavuklabs/geminiclient/httpx"
	"github.com/bhavuklabs/geminiclient/internal/config"
	"github.com/bhavuklabs/geminiclient/internal/history"
	"github.com/bhavuklabs/geminiclient/internal/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Println(httpx.RedactURLSecrets(err.Error()))
		os.Exit(1)
	}
}

type rootOptions struct {
	configDir string
	model     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "geminichat [prompt]",
		Short: "Chat with the Gemini generateContent API",
		Long: `geminichat sends prompts to the Gemini generateContent API.

With a prompt argument it runs one exchange and exits. Without one it
reads from stdin, or starts an interactive session when attached to a
terminal.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), opts, args)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config", "", "directory containing geminichat.yaml")
	cmd.Flags().StringVar(&opts.model, "model", "", "override the configured model")

	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the geminichat version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version())
		},
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if !cfg.Store.Enabled {
				return fmt.Errorf("history store is disabled; enable store in the config")
			}

			store, err := history.NewStore(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			conversations, err := store.ListConversations(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, c := range conversations {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
					c.StartedAt.Format(time.RFC3339), c.ID, c.Model)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum conversations to list")
	return cmd
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: configPaths(opts.configDir),
		FileName:    "geminichat",
		EnvPrefix:   "GEMINI",
	})
	if err != nil {
		return config.Config{}, fmt.Errorf("config load failed: %w", err)
	}
	if opts.model != "" {
		cfg.API.Model = opts.model
	}
	return cfg, nil
}

func configPaths(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home+"/.geminichat")
	}
	return paths
}

// session bundles everything one chat run needs.
type session struct {
	cfg     config.Config
	model   *gemini.ChatModel
	metrics httpx.Metrics
	store   *history.Store

	convID      string
	convCreated bool
}

func newSession(cfg config.Config) (*session, error) {
	if cfg.API.Key == "" {
		return nil, fmt.Errorf("no API key configured; set api.key or GEMINI_API_KEY")
	}

	timeout := httpx.ParseTimeout(cfg.API.Timeout, 60*time.Second)
	exchanger := gemini.NewHTTPExchanger(timeout)
	model := gemini.NewChatModel(exchanger, gemini.NewRequestValidator())

	s := &session{cfg: cfg, model: model}

	if cfg.Observability.Logging.Enabled {
		model.SetLogger(httpx.NewDefaultLogger(
			httpx.ParseLevel(cfg.Observability.Logging.Level),
			httpx.ParseFormat(cfg.Observability.Logging.Format),
		))
	}
	if cfg.Observability.Metrics.Enabled {
		s.metrics = httpx.NewDefaultMetrics()
		model.SetMetrics(s.metrics)
	}

	if cfg.Store.Enabled {
		store, err := history.NewStore(cfg.Store.Path)
		if err != nil {
			log.Printf("warning: failed to open history store: %v", err)
		} else {
			s.store = store
			s.convID = uuid.NewString()
		}
	}

	return s, nil
}

func (s *session) close() {
	if s.store != nil {
		s.store.Close()
	}
}

// ask runs one exchange and returns the reply text.
func (s *session) ask(ctx context.Context, prompt string) (string, error) {
	body := gemini.NewRequestBody(gemini.NewContent(gemini.NewRequestPart(prompt)))
	request := gemini.NewChatRequest(s.cfg.API.Endpoint(), body).WithAPIKey(s.cfg.API.Key)

	response, err := s.model.Call(ctx, request)
	if err != nil {
		// Validation failure, nothing was sent.
		return "", err
	}

	reply := firstCandidateText(response.Body())

	if !response.Successful() {
		classified := httpx.ClassifyStatus("gemini", response.StatusCode(), response.ErrorMessage())
		if reply != "" {
			return "", fmt.Errorf("%s: %s", classified.Type, reply)
		}
		return "", classified
	}

	s.record(ctx, prompt, reply, response)
	return reply, nil
}

func (s *session) record(ctx context.Context, prompt, reply string, response *gemini.ChatResponse) {
	if s.store == nil {
		return
	}
	if !s.convCreated {
		conversation := history.Conversation{
			ID:        s.convID,
			StartedAt: time.Now().UTC(),
			Model:     s.cfg.API.Model,
		}
		if err := s.store.CreateConversation(ctx, conversation); err != nil {
			log.Printf("warning: failed to record conversation: %v", err)
			s.store = nil
			return
		}
		s.convCreated = true
	}

	body := response.Body()
	_, err := s.store.AppendExchange(ctx, history.Exchange{
		ConversationID: s.convID,
		Prompt:         prompt,
		Reply:          reply,
		StatusCode:     response.StatusCode(),
		ModelVersion:   body.ModelVersion(),
		TokensIn:       body.TokenCount(gemini.UsagePromptTokens),
		TokensOut:      body.TokenCount(gemini.UsageCandidatesTokens),
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		log.Printf("warning: failed to record exchange: %v", err)
	}
}

func runChat(ctx context.Context, opts *rootOptions, args []string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.close()

	if len(args) > 0 {
		return oneShot(ctx, s, strings.Join(args, " "))
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return interactive(ctx, s)
	}

	piped, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	prompt := strings.TrimSpace(string(piped))
	if prompt == "" {
		return fmt.Errorf("no prompt given")
	}
	return oneShot(ctx, s, prompt)
}

func oneShot(ctx context.Context, s *session, prompt string) error {
	reply, err := s.ask(ctx, prompt)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func interactive(ctx context.Context, s *session) error {
	fmt.Printf("geminichat %s — model %s (ctrl-d to quit)\n", version.Version(), s.cfg.API.Model)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Printf("%s ", roleHeading("user"))
		if !scanner.Scan() {
			break
		}
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			continue
		}
		if prompt == "exit" || prompt == "quit" {
			break
		}

		fmt.Printf("(~%d prompt tokens)\n", gemini.EstimateTokens(prompt))

		reply, err := s.ask(ctx, prompt)
		if err != nil {
			fmt.Printf("%s %s\n", roleHeading("error"), httpx.RedactURLSecrets(err.Error()))
			continue
		}
		fmt.Printf("%s %s\n", roleHeading("model"), reply)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	printStats(s)
	return nil
}

func printStats(s *session) {
	if s.metrics == nil {
		return
	}
	stats := s.metrics.GetStats()
	if stats.TotalRequests == 0 {
		return
	}
	fmt.Printf("\n%d requests, %d/%d tokens in/out, %d errors\n",
		stats.TotalRequests, stats.TotalTokensIn, stats.TotalTokensOut, stats.ErrorCount)
}

// roleHeading renders a title-cased transcript label, e.g. "User:".
func roleHeading(role string) string {
	return cases.Title(language.English).String(role) + ":"
}

// firstCandidateText joins the text of the first candidate, if any.
func firstCandidateText(body gemini.ResponseBody) string {
	candidates := body.Candidates()
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0].Text()
}
