package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/EshanAk-dev/Filmex/internal/config"
	"github.com/EshanAk-dev/Filmex/internal/model"
	"github.com/EshanAk-dev/Filmex/internal/saved"
	"github.com/EshanAk-dev/Filmex/internal/session"
	"github.com/EshanAk-dev/Filmex/internal/trending"
	"github.com/EshanAk-dev/Filmex/pkg/appwrite"
	"github.com/EshanAk-dev/Filmex/pkg/cache"
	"github.com/EshanAk-dev/Filmex/pkg/fetch"
	"github.com/EshanAk-dev/Filmex/pkg/tmdb"
)

const usage = `usage: filmex <command> [args]

catalog:
  search [text...]     search movies (no args: interactive, debounced)
  discover [pages]     popular movies, paginated
  genre <id> [pages]   movies for one genre, paginated
  genres               list genres
  movie <id>           movie details
  trending             most-searched movies

account (uses FILMEX_EMAIL / FILMEX_PASSWORD):
  register <name> <email> <password>
  login                verify credentials and print the account
  logout               end the current session on the backend
  saved                list saved movies
  save <movieID>       save a movie
  remove <movieID>     remove a saved movie
`

type app struct {
	cfg      config.Config
	catalog  tmdb.Catalog
	session  *session.Manager
	saved    *saved.Collection
	trending *trending.Service
}

func main() {
	_ = godotenv.Load() // best-effort
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	a := newApp(cfg)
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}

func newApp(cfg config.Config) *app {
	var c cache.Cache
	if addr := cfg.ValkeyAddr; addr != "" {
		vc, err := cache.NewValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			log.Error().Err(err).Msg("valkey connect failed, using in-memory cache")
			c = cache.NewInMemory(cfg.CatalogLRU, cfg.CatalogTTL)
		} else {
			c = vc
		}
	} else {
		c = cache.NewInMemory(cfg.CatalogLRU, cfg.CatalogTTL)
	}

	catalog := tmdb.New(cfg.TMDBToken)
	catalog.BaseURL = cfg.TMDBBaseURL

	aw := appwrite.New(cfg.AppwriteEndpoint, cfg.AppwriteProject)
	sess := session.NewManager(appwrite.NewAccount(aw))

	var store saved.Store
	var trend *trending.Service
	if cfg.AppwriteProject != "" && cfg.AppwriteDatabaseID != "" {
		db := appwrite.NewDatabases(aw)
		store = saved.NewAppwriteStore(db, cfg.AppwriteDatabaseID, cfg.SavedCollectionID)
		if cfg.MetricsCollectionID != "" {
			trend = trending.NewService(db, cfg.AppwriteDatabaseID, cfg.MetricsCollectionID, tmdb.ImageBaseURL)
		}
	} else {
		log.Warn().Msg("backend not configured, saved movies are in-memory only")
		store = saved.NewMemoryStore()
	}

	col := saved.NewCollection(store)
	col.Bind(sess)

	return &app{
		cfg:      cfg,
		catalog:  tmdb.NewCached(catalog, c, cfg.CatalogTTL),
		session:  sess,
		saved:    col,
		trending: trend,
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "search":
		if len(args) == 0 {
			return a.interactiveSearch(ctx)
		}
		return a.searchOnce(ctx, joinArgs(args))
	case "discover":
		return a.paginate(ctx, pagesArg(args, 0), func(ctx context.Context, page int) ([]model.Movie, error) {
			return a.catalog.DiscoverMovies(ctx, page)
		})
	case "genre":
		if len(args) < 1 {
			return fmt.Errorf("genre id required")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid genre id %q", args[0])
		}
		return a.paginate(ctx, pagesArg(args, 1), func(ctx context.Context, page int) ([]model.Movie, error) {
			return a.catalog.MoviesByGenre(ctx, id, page)
		})
	case "genres":
		genres, err := a.catalog.Genres(ctx)
		if err != nil {
			return err
		}
		for _, g := range genres {
			fmt.Printf("%5d  %s\n", g.ID, g.Name)
		}
		return nil
	case "movie":
		if len(args) < 1 {
			return fmt.Errorf("movie id required")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid movie id %q", args[0])
		}
		d, err := a.catalog.MovieDetails(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)  %.1f/10 over %d votes\n", d.Title, d.ReleaseDate, d.VoteAverage, d.VoteCount)
		fmt.Printf("runtime %d min, status %s\n", d.Runtime, d.Status)
		if d.Overview != "" {
			fmt.Println(d.Overview)
		}
		return nil
	case "trending":
		if a.trending == nil {
			return fmt.Errorf("metrics collection not configured")
		}
		top, err := a.trending.Top(ctx, trending.DefaultTop)
		if err != nil {
			return err
		}
		for i, t := range top {
			fmt.Printf("%d. %s (searched %d times as %q)\n", i+1, t.Title, t.Count, t.SearchTerm)
		}
		return nil
	case "register":
		if len(args) < 3 {
			return fmt.Errorf("usage: register <name> <email> <password>")
		}
		u, err := a.session.Register(ctx, session.RegisterParams{Name: args[0], Email: args[1], Password: args[2]})
		if err != nil {
			return err
		}
		fmt.Printf("registered %s <%s>\n", u.Name, u.Email)
		return nil
	case "login":
		if err := a.login(ctx); err != nil {
			return err
		}
		u, _ := a.session.Current()
		fmt.Printf("signed in as %s <%s>\n", u.Name, u.Email)
		return nil
	case "logout":
		if err := a.login(ctx); err != nil {
			return err
		}
		if err := a.session.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil
	case "saved":
		if err := a.login(ctx); err != nil {
			return err
		}
		for _, m := range a.saved.Movies() {
			fmt.Printf("%8d  %-40s saved %s\n", m.MovieID, m.Title, m.SavedAt.Format("2006-01-02 15:04"))
		}
		return nil
	case "save":
		return a.mutateSaved(ctx, args, func(ctx context.Context, id int64) error {
			d, err := a.catalog.MovieDetails(ctx, id)
			if err != nil {
				return err
			}
			return a.saved.Save(ctx, d.Movie)
		})
	case "remove":
		return a.mutateSaved(ctx, args, func(ctx context.Context, id int64) error {
			return a.saved.Remove(ctx, id)
		})
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) searchOnce(ctx context.Context, query string) error {
	movies, err := a.catalog.SearchMovies(ctx, query, 1)
	if err != nil {
		return err
	}
	printMovies(movies)
	if a.trending != nil && len(movies) > 0 {
		if err := a.trending.RecordSearch(ctx, query, movies[0]); err != nil {
			log.Warn().Err(err).Msg("recording search metric failed")
		}
	}
	return nil
}

// interactiveSearch reads lines from stdin and fetches through the debounced
// coordinator, the same wiring the search screen uses.
func (a *app) interactiveSearch(ctx context.Context) error {
	var mu sync.Mutex
	var query string

	f := fetch.New(ctx, func(ctx context.Context) ([]model.Movie, error) {
		mu.Lock()
		q := query
		mu.Unlock()
		return a.catalog.SearchMovies(ctx, q, 1)
	}, false)
	f.OnChange(func(st fetch.State[[]model.Movie]) {
		switch {
		case st.Loading:
			fmt.Println("searching...")
		case st.Err != nil:
			fmt.Printf("error: %v\n", st.Err)
		default:
			printMovies(st.Data)
		}
	})

	d := fetch.NewDebouncer(a.cfg.QuietPeriod, func(q string) {
		mu.Lock()
		query = q
		mu.Unlock()
		f.Refetch(ctx)
	}, f.Reset)
	defer d.Stop()

	fmt.Println("type to search, empty line clears, ctrl-d quits")
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		d.Observe(sc.Text())
	}
	return sc.Err()
}

func (a *app) paginate(ctx context.Context, pages int, fn fetch.PageFunc[model.Movie]) error {
	if pages <= 0 {
		pages = 1
	}
	p := fetch.NewPager(fn)
	p.SetMaxPages(a.cfg.MaxListPages)
	if err := p.LoadFirst(ctx); err != nil {
		return err
	}
	for i := 1; i < pages; i++ {
		if err := p.LoadNext(ctx); err != nil {
			return err
		}
		if p.State().Exhausted {
			break
		}
	}
	st := p.State()
	printMovies(st.Items)
	if st.Exhausted {
		fmt.Println("(no more pages)")
	}
	return nil
}

func (a *app) mutateSaved(ctx context.Context, args []string, fn func(ctx context.Context, id int64) error) error {
	if len(args) < 1 {
		return fmt.Errorf("movie id required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid movie id %q", args[0])
	}
	if err := a.login(ctx); err != nil {
		return err
	}
	return fn(ctx, id)
}

func (a *app) login(ctx context.Context) error {
	if _, ok := a.session.Current(); ok {
		return nil
	}
	if a.cfg.AccountEmail == "" || a.cfg.AccountPassword == "" {
		return fmt.Errorf("set FILMEX_EMAIL and FILMEX_PASSWORD to use account commands")
	}
	_, err := a.session.Login(ctx, a.cfg.AccountEmail, a.cfg.AccountPassword)
	return err
}

func printMovies(movies []model.Movie) {
	if len(movies) == 0 {
		fmt.Println("no movies found")
		return
	}
	for _, m := range movies {
		fmt.Printf("%8d  %-40s %s  %.1f\n", m.ID, m.Title, m.ReleaseDate, m.VoteAverage)
	}
}

func joinArgs(args []string) string {
	out := args[0]
	for _, a := range args[1:] {
		out += " " + a
	}
	return out
}

func pagesArg(args []string, idx int) int {
	if len(args) <= idx {
		return 1
	}
	n, err := strconv.Atoi(args[idx])
	if err != nil {
		return 1
	}
	return n
}
