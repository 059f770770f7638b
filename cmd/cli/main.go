package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pundit-agent/internal/ai"
	"github.com/pundit-agent/internal/auth"
	"github.com/pundit-agent/internal/config"
	"github.com/pundit-agent/internal/discovery"
	"github.com/pundit-agent/internal/fetch"
	"github.com/pundit-agent/internal/lifecycle"
	"github.com/pundit-agent/internal/models"
	"github.com/pundit-agent/internal/settings"
	"github.com/pundit-agent/internal/share"
	"github.com/pundit-agent/internal/storage"
	"github.com/pundit-agent/internal/storage/sqlite"
	"github.com/pundit-agent/internal/syncer"
	"github.com/pundit-agent/pkg/logger"
	"github.com/pundit-agent/pkg/ratelimit"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
	repo    storage.Repository
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pundit",
		Short: "Personal branding content assistant powered by AI",
		Long: `Watches your industry publications, matches articles against tracked
keywords and companies, and drafts platform-specific social posts in a
selectable editorial tone.`,
		PersistentPreRunE: initializeApp,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(onboardCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(articlesCmd())
	rootCmd.AddCommand(reviewCmd())
	rootCmd.AddCommand(sourcesCmd())
	rootCmd.AddCommand(keywordsCmd())
	rootCmd.AddCommand(companiesCmd())
	rootCmd.AddCommand(shareCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initializeApp loads configuration and initializes shared dependencies
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	repo, err = sqlite.New(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// ============ SESSION ============

func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pundit", "session"), nil
}

func saveSession(userID string) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(userID), 0600)
}

func clearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func currentUser(ctx context.Context) (*models.User, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("not logged in, run `pundit auth login` first")
	}
	user, err := repo.GetUserByID(ctx, strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("session is stale, run `pundit auth login` again")
	}
	return user, nil
}

// ============ WORKSPACE ============

// workspace bundles the per-user state the commands operate on: the settings
// store, the article lifecycle controller and the persistence bridge
// mirroring both.
type workspace struct {
	user       *models.User
	store      *settings.Store
	controller *lifecycle.Controller
	bridge     *syncer.Syncer
	ai         *ai.Client
	limiter    *ratelimit.MultiLimiter
	lastScanAt *time.Time
}

func loadWorkspace(ctx context.Context) (*workspace, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	ws := &workspace{
		user:    user,
		store:   settings.New(),
		limiter: ratelimit.NewDefaultLimiter(),
	}
	ws.ai = ai.NewClient(cfg.Anthropic, ws.limiter, log)
	ws.controller = lifecycle.New(ws.store, ws.ai, cfg.Inbox.Cap, log)
	ws.bridge = syncer.New(repo, cfg.Sync.Debounce, ws.snapshot, log)
	ws.bridge.SetUser(user.ID)

	snap, err := repo.ReadSnapshot(ctx, user.ID)
	if err != nil {
		// Local state stays authoritative; start from an empty workspace
		log.Error().Err(err).Msg("Snapshot read failed, starting empty")
	} else if snap != nil {
		ws.store.Load(snap)
		ws.controller.Load(snap.Inbox, snap.Archive)
		ws.lastScanAt = snap.LastScanAt
	}

	ws.store.OnChange(ws.bridge.Notify)
	ws.controller.OnChange(ws.bridge.Notify)
	return ws, nil
}

func (w *workspace) snapshot() *models.Snapshot {
	return &models.Snapshot{
		Sources:    w.store.Sources(),
		Keywords:   w.store.Keywords(),
		Companies:  w.store.Companies(),
		Inbox:      w.controller.Inbox(),
		Archive:    w.controller.Archive(),
		LastScanAt: w.lastScanAt,
	}
}

// ============ AUTH COMMANDS ============

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account commands",
	}
	cmd.AddCommand(authRegisterCmd())
	cmd.AddCommand(authLoginCmd())
	cmd.AddCommand(authLogoutCmd())
	cmd.AddCommand(authWhoamiCmd())
	return cmd
}

func authRegisterCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := auth.New(repo, log)
			user, err := svc.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			if err := saveSession(user.ID); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			fmt.Printf("Registered %s (%s). Run `pundit onboard` to set up tracking.\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (min 6 characters)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func authLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := auth.New(repo, log)
			user, err := svc.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := saveSession(user.ID); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			fmt.Printf("Logged in as %s\n", user.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func authLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clearSession(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func authWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := currentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

// ============ ONBOARD COMMAND ============

func onboardCmd() *cobra.Command {
	var profession string
	var accept bool

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Seed sources, keywords and companies for your profession",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			data, err := ws.ai.AnalyzeProfession(cmd.Context(), profession)
			if err != nil {
				return fmt.Errorf("onboarding analysis failed: %w", err)
			}

			fmt.Printf("\n%s\n\n", data.Analysis)
			fmt.Printf("Suggested: %d sources, %d keywords, %d companies\n",
				len(data.SuggestedSources), len(data.SuggestedKeywords), len(data.SuggestedCompanies))

			if !accept {
				for _, src := range data.SuggestedSources {
					fmt.Printf("  source:  %-30s %s\n", src.Name, src.URL)
				}
				fmt.Printf("  keywords:  %s\n", strings.Join(data.SuggestedKeywords, ", "))
				fmt.Printf("  companies: %s\n", strings.Join(data.SuggestedCompanies, ", "))
				fmt.Println("\nRe-run with --accept to apply these suggestions.")
				return nil
			}

			for _, src := range data.SuggestedSources {
				if _, err := ws.store.AddNamedSource(src.Name, src.URL); err != nil {
					log.Warn().Err(err).Str("url", src.URL).Msg("Skipping invalid suggested source")
				}
			}
			for _, kw := range data.SuggestedKeywords {
				_ = ws.store.AddKeyword(kw)
			}
			for _, c := range data.SuggestedCompanies {
				_ = ws.store.AddCompany(c)
			}
			ws.bridge.Flush()
			fmt.Println("Applied. Run `pundit scan` to fill your inbox.")
			return nil
		},
	}

	cmd.Flags().StringVar(&profession, "profession", "", "Your profession or niche")
	cmd.Flags().BoolVar(&accept, "accept", false, "Apply suggestions without review")
	cmd.MarkFlagRequired("profession")
	return cmd
}

// ============ SCAN COMMAND ============

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan active sources and merge matches into the inbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			scanner := discovery.New(ws.limiter, cfg.Scanner.Bound, log)

			stubs := scanner.Scan(cmd.Context(), ws.store.ActiveSources(), ws.store.Terms())
			added := ws.controller.Ingest(stubs)
			now := time.Now()
			ws.lastScanAt = &now
			ws.bridge.Flush()

			fmt.Printf("Scan found %d candidates, %d new articles in inbox (%d total)\n",
				len(stubs), added, len(ws.controller.Inbox()))
			return nil
		},
	}
}

// ============ ARTICLE COMMANDS ============

func articlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Inbox and archive commands",
	}
	cmd.AddCommand(articlesListCmd())
	cmd.AddCommand(articlesGenerateCmd())
	cmd.AddCommand(articlesArchiveCmd())
	cmd.AddCommand(articlesDeleteCmd())
	cmd.AddCommand(articlesClearCmd())
	return cmd
}

func parseScope(s string) (lifecycle.Scope, error) {
	switch s {
	case "inbox":
		return lifecycle.ScopeInbox, nil
	case "archive":
		return lifecycle.ScopeArchive, nil
	default:
		return "", fmt.Errorf("unknown scope %q (valid: inbox, archive)", s)
	}
}

func articlesListCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles in the inbox or archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			sc, err := parseScope(scope)
			if err != nil {
				return err
			}

			list := ws.controller.Inbox()
			if sc == lifecycle.ScopeArchive {
				list = ws.controller.Archive()
			}
			if len(list) == 0 {
				fmt.Printf("No articles in %s\n", scope)
				return nil
			}
			for _, a := range list {
				printArticle(a)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "inbox", "Collection: inbox or archive")
	return cmd
}

func printArticle(a *models.Article) {
	status := string(a.ProcessingStatus)
	if a.ProcessingStatus == models.StatusCompleted && a.Result != nil {
		if a.Result.Skipped() {
			status = "COMPLETED (skipped)"
		} else {
			status = fmt.Sprintf("COMPLETED (%s)", a.Result.Meta.AppliedTone)
		}
	}
	fmt.Printf("%s  [%s]\n", a.ID, status)
	fmt.Printf("  %s\n", a.Title)
	fmt.Printf("  %s | %s | %s\n", a.SourceName, a.PublishedAt.Format("2006-01-02"), strings.Join(a.MatchedTerms, ", "))
	fmt.Printf("  %s\n", a.Link)
}

func articlesGenerateCmd() *cobra.Command {
	var toneStr string

	cmd := &cobra.Command{
		Use:   "generate <article-id>",
		Short: "Draft platform posts for an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			tone, err := models.ParseTone(toneStr)
			if err != nil {
				return err
			}
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			result, err := ws.controller.Generate(cmd.Context(), args[0], tone)
			ws.bridge.Flush()
			if err != nil {
				return err
			}

			link := ""
			if a, err := ws.controller.Find(args[0]); err == nil {
				link = a.Link
			}
			printResult(result, link)
			return nil
		},
	}

	cmd.Flags().StringVar(&toneStr, "tone", string(models.ToneAIChoice), "Editorial tone: Authoritative, Provocative, Controversial, AI Choice")
	return cmd
}

func printResult(result *models.GenerationResult, articleURL string) {
	fmt.Printf("\nTopic:     %s\n", result.Meta.SourceTopic)
	fmt.Printf("Sentiment: %s  Virality: %.0f/10  Tone: %s\n",
		result.Meta.Sentiment, result.Meta.ViralityScore, result.Meta.AppliedTone)

	if result.Skipped() {
		fmt.Println("\nSTATUS: SKIP - keyword match failed or content irrelevant.")
		fmt.Println("Re-run generate with another tone to force a fresh attempt.")
		return
	}

	fmt.Println("\n--- LinkedIn ---")
	fmt.Println(share.PostText(result.Posts, share.PlatformLinkedIn, articleURL))
	fmt.Println("\n--- Short form ---")
	fmt.Println(share.PostText(result.Posts, share.PlatformTwitter, articleURL))
}

func articlesArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <article-id>...",
		Short: "Move inbox articles to the archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if err := ws.controller.ArchiveArticle(args[0]); err != nil {
					return err
				}
				fmt.Println("Archived 1 article")
			} else {
				moved := ws.controller.BulkArchive(args)
				fmt.Printf("Archived %d articles\n", moved)
			}
			ws.bridge.Flush()
			return nil
		},
	}
}

func articlesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <article-id>...",
		Short: "Delete articles from either collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				ws.controller.DeleteArticle(args[0])
				fmt.Println("Deleted")
			} else {
				removed := ws.controller.BulkDelete(args)
				fmt.Printf("Deleted %d articles\n", removed)
			}
			ws.bridge.Flush()
			return nil
		},
	}
}

func articlesClearCmd() *cobra.Command {
	var scope string
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the inbox or archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := parseScope(scope)
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("clearing the %s is destructive, re-run with --yes to confirm", scope)
			}
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			ws.controller.ClearAll(sc)
			ws.bridge.Flush()
			fmt.Printf("Cleared %s\n", scope)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "inbox", "Collection: inbox or archive")
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the destructive action")
	return cmd
}

// ============ REVIEW COMMAND ============

func reviewCmd() *cobra.Command {
	var toneStr string
	var keep bool

	cmd := &cobra.Command{
		Use:   "review <url>",
		Short: "Instantly draft posts for an arbitrary article URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			tone, err := models.ParseTone(toneStr)
			if err != nil {
				return err
			}
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			articleURL := args[0]
			fetcher := fetch.New(ws.limiter, log)
			headline, err := fetcher.Headline(cmd.Context(), articleURL)
			if err != nil {
				// Unreachable pages still get reviewed; the model decides SKIP
				log.Warn().Err(err).Str("url", articleURL).Msg("Could not fetch live headline")
				headline = ""
			}

			req := models.GenerationRequest{
				Context:      "URL: " + articleURL,
				Terms:        ws.store.Terms(),
				ArticleURL:   articleURL,
				Tone:         tone,
				LiveHeadline: headline,
			}
			result, err := ws.ai.Process(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("instant review failed: %w", err)
			}

			printResult(result, articleURL)

			if keep && !result.Skipped() {
				title := headline
				if title == "" {
					title = articleURL
				}
				ws.controller.Ingest([]models.Stub{{
					Title:       title,
					Summary:     result.Meta.SourceTopic,
					Link:        articleURL,
					SourceName:  "Instant Review",
					PublishedAt: time.Now(),
				}})
				ws.bridge.Flush()
				fmt.Println("\nSaved to inbox; run generate on it to attach a draft.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&toneStr, "tone", string(models.ToneAIChoice), "Editorial tone")
	cmd.Flags().BoolVar(&keep, "keep", false, "Add the reviewed article to the inbox")
	return cmd
}

// ============ SOURCE COMMANDS ============

func sourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Feed source commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List feed sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			for _, src := range ws.store.Sources() {
				flag := " "
				if src.Active {
					flag = "*"
				}
				fmt.Printf("[%s] %s  %-25s %s\n", flag, src.ID, src.Name, src.URL)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <url>",
		Short: "Add a feed source by URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			src, err := ws.store.AddSource(args[0])
			if err != nil {
				return err
			}
			ws.bridge.Flush()
			fmt.Printf("Added %s (%s)\n", src.Name, src.URL)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <source-id>",
		Short: "Flip a source's active flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if err := ws.store.ToggleSource(args[0]); err != nil {
				return err
			}
			ws.bridge.Flush()
			fmt.Println("Toggled")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <source-id>",
		Short: "Delete a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			ws.store.RemoveSource(args[0])
			ws.bridge.Flush()
			fmt.Println("Removed")
			return nil
		},
	})

	return cmd
}

// ============ TERM COMMANDS ============

func keywordsCmd() *cobra.Command {
	return termCmd("keywords", "Tracked keyword commands",
		func(ws *workspace) []string { return ws.store.Keywords() },
		func(ws *workspace, term string) error { return ws.store.AddKeyword(term) },
		func(ws *workspace, term string) { ws.store.RemoveKeyword(term) },
	)
}

func companiesCmd() *cobra.Command {
	return termCmd("companies", "Tracked company commands",
		func(ws *workspace) []string { return ws.store.Companies() },
		func(ws *workspace, term string) error { return ws.store.AddCompany(term) },
		func(ws *workspace, term string) { ws.store.RemoveCompany(term) },
	)
}

func termCmd(use, short string, list func(*workspace) []string, add func(*workspace, string) error, remove func(*workspace, string)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tracked terms in insertion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			for _, term := range list(ws) {
				fmt.Println(term)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <term>",
		Short: "Track a new term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if err := add(ws, args[0]); err != nil {
				return err
			}
			ws.bridge.Flush()
			fmt.Printf("Tracking %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <term>",
		Short: "Stop tracking a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			remove(ws, args[0])
			ws.bridge.Flush()
			fmt.Printf("Removed %q\n", args[0])
			return nil
		},
	})

	return cmd
}

// ============ SHARE COMMAND ============

func shareCmd() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "share <article-id>",
		Short: "Print the share URL for an article's draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			a, err := ws.controller.Find(args[0])
			if err != nil {
				return err
			}
			if a.Result == nil || a.Result.Posts == nil {
				return fmt.Errorf("article has no draft yet, run `pundit articles generate %s` first", args[0])
			}

			switch share.Platform(platform) {
			case share.PlatformTwitter:
				text := share.PostText(a.Result.Posts, share.PlatformTwitter, a.Link)
				fmt.Println(share.TweetIntentURL(text))
			case share.PlatformLinkedIn:
				text := share.PostText(a.Result.Posts, share.PlatformLinkedIn, a.Link)
				fmt.Println(share.LinkedInIntentURL(text))
				if share.Configured(cfg.LinkedIn) {
					fmt.Println("\nNative posting authorization URL:")
					fmt.Println(share.AuthURL(cfg.LinkedIn, a.ID))
				}
			default:
				return fmt.Errorf("unknown platform %q (valid: linkedin, twitter)", platform)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "linkedin", "Share target: linkedin or twitter")
	return cmd
}
