package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"instafeed/app/api"
	"instafeed/app/config"
	"instafeed/app/feed"
	"instafeed/app/models"
	"instafeed/app/observability"
	"instafeed/app/session"
	"instafeed/app/view"

	"github.com/rs/zerolog"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	log := observability.InitLogger("instafeed")

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("instafeed version %s\n", cliVersion)
	case "login":
		runLogin(log, os.Args[2:])
	case "logout":
		runLogout(log)
	case "theme":
		runTheme(log, os.Args[2:])
	case "feed":
		runFeed(log, os.Args[2:])
	case "profile":
		runProfile(log)
	case "search":
		runSearch(log, os.Args[2:])
	case "post":
		runPost(log, os.Args[2:])
	case "photo":
		runPhoto(log, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: instafeed <command> [options]
Commands:
  help                        Display this help message.
  version                     Show version information.
  login <id> <name> <token>   Store the session identity locally.
  logout                      Clear the stored session (asks first).
  theme [light|dark]          Show or set the display theme.
  feed [pages]                Load and render the feed (default 1 page).
  profile                     Render the viewer's profile.
  search <query>              Search fetched posts by caption or hashtag.
  post <caption> [image-url]  Create a new post.
  photo <image-url>           Update the profile photo.

Config is read from instafeed.toml, or the file named by INSTAFEED_CONFIG.
`
	fmt.Println(helpText)
}

func loadConfig(log zerolog.Logger) config.Config {
	path := os.Getenv("INSTAFEED_CONFIG")
	if path == "" {
		path = "instafeed.toml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	return cfg
}

func openStore(log zerolog.Logger, cfg config.Config) *session.Store {
	store, err := session.NewStore(cfg.StorePath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open local store")
	}
	return store
}

// buildReconciler loads the stored session and wires the client stack.
// A missing session is fatal: the user has to log in first.
func buildReconciler(log zerolog.Logger) (*feed.Reconciler, *view.Renderer, func()) {
	cfg := loadConfig(log)
	store := openStore(log, cfg)

	sess, err := store.LoadSession()
	if err != nil {
		store.Close()
		if errors.Is(err, session.ErrNoSession) {
			log.Fatal().Msg("no stored session; run: instafeed login <id> <name> <token>")
		}
		log.Fatal().Err(err).Msg("cannot load session")
	}

	client := api.NewClient(cfg.BaseURL, sess.Token, time.Duration(cfg.RequestTimeout)*time.Second, log)
	rec := feed.New(client, client, sess, cfg.PageSize, cfg.ScrollThreshold, log)
	renderer := view.NewRenderer(sess)
	return rec, renderer, func() { store.Close() }
}

func askConfirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func runLogin(log zerolog.Logger, args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: instafeed login <user-id> <username> <token>")
		os.Exit(1)
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		log.Fatal().Str("arg", args[0]).Msg("user id must be numeric")
	}

	cfg := loadConfig(log)
	store := openStore(log, cfg)
	defer store.Close()

	sess := session.Session{UserID: userID, Username: args[1], Token: args[2]}
	if err := store.SaveSession(sess); err != nil {
		log.Fatal().Err(err).Msg("cannot save session")
	}
	fmt.Printf("Logged in as %s (id %d)\n", sess.Username, sess.UserID)
}

func runLogout(log zerolog.Logger) {
	if !askConfirm("Are you sure you want to logout?") {
		return
	}
	cfg := loadConfig(log)
	store := openStore(log, cfg)
	defer store.Close()
	if err := store.Clear(); err != nil {
		log.Fatal().Err(err).Msg("cannot clear session")
	}
	fmt.Println("Logged out.")
}

func runTheme(log zerolog.Logger, args []string) {
	cfg := loadConfig(log)
	store := openStore(log, cfg)
	defer store.Close()

	if len(args) == 0 {
		fmt.Println(store.Theme())
		return
	}
	theme := strings.ToLower(args[0])
	if theme != "light" && theme != "dark" {
		fmt.Println("Usage: instafeed theme [light|dark]")
		os.Exit(1)
	}
	if err := store.SetTheme(theme); err != nil {
		log.Fatal().Err(err).Msg("cannot save theme")
	}
	fmt.Printf("Theme set to %s\n", theme)
}

func runFeed(log zerolog.Logger, args []string) {
	pages := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			pages = n
		}
	}

	rec, renderer, closeStore := buildReconciler(log)
	defer closeStore()
	ctx := context.Background()

	for i := 0; i < pages && rec.HasMore(); i++ {
		page, err := rec.LoadNextPage(ctx)
		if err != nil {
			if errors.Is(err, api.ErrAuth) {
				log.Fatal().Msg("session expired; log in again")
			}
			log.Fatal().Err(err).Msg("feed load failed")
		}
		rec.Hydrate(ctx, page)
	}

	if err := renderer.RenderFeed(os.Stdout, rec.Posts()); err != nil {
		log.Fatal().Err(err).Msg("render failed")
	}
}

func runProfile(log zerolog.Logger) {
	rec, renderer, closeStore := buildReconciler(log)
	defer closeStore()

	profile, err := rec.Profile(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("profile load failed")
	}
	data := view.ProfileData{
		Username:  profile.Username,
		UserID:    profile.UserID,
		Posts:     profile.Stats.Posts,
		Followers: profile.Stats.Followers,
		Following: profile.Stats.Following,
	}
	if err := renderer.RenderProfile(os.Stdout, data); err != nil {
		log.Fatal().Err(err).Msg("render failed")
	}
}

func runPhoto(log zerolog.Logger, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: instafeed photo <image-url>")
		os.Exit(1)
	}

	rec, _, closeStore := buildReconciler(log)
	defer closeStore()

	if err := rec.UpdateProfilePhoto(context.Background(), args[0]); err != nil {
		log.Fatal().Err(err).Msg("photo update failed")
	}
	fmt.Println("Profile photo updated.")
}

func runSearch(log zerolog.Logger, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: instafeed search <query>")
		os.Exit(1)
	}
	query := strings.Join(args, " ")

	rec, renderer, closeStore := buildReconciler(log)
	defer closeStore()
	ctx := context.Background()

	// Searching filters a fetched superset; pull a bounded number of
	// pages first.
	for i := 0; i < 10 && rec.HasMore(); i++ {
		page, err := rec.LoadNextPage(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("feed load failed")
		}
		if len(page.Posts) == 0 {
			break
		}
	}

	matches := rec.Search(query)
	if len(matches) == 0 {
		fmt.Println("No results found")
		return
	}
	if err := renderer.RenderFeed(os.Stdout, matches); err != nil {
		log.Fatal().Err(err).Msg("render failed")
	}
}

func runPost(log zerolog.Logger, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: instafeed post <caption> [image-url]")
		os.Exit(1)
	}
	in := models.NewPostInput{Caption: args[0]}
	if len(args) > 1 {
		in.ImageURL = args[1]
	}

	rec, _, closeStore := buildReconciler(log)
	defer closeStore()

	if err := rec.CreatePost(context.Background(), in); err != nil {
		log.Fatal().Err(err).Msg("post creation failed")
	}
	fmt.Println("Post created.")
}
