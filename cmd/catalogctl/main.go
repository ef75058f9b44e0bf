// Command catalogctl inspects and edits the catalog of a running server.
//
//	catalogctl tree [-lang he] [-all]
//	catalogctl toggle -id 4
//	catalogctl reorder -moved 7 -target 3
//	catalogctl browse [-gender forBoys,unisex] [-brand Lego] [-age 3-5y] [-min 10] [-max 90]
//	                  [-q car] [-sort priceAsc] [-page 2] [-page-size 48] [-lang he] [-hidden]
//
// The API root is read from CATALOG_API_URL and the bearer token from CATALOG_API_TOKEN.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"toyshop/internal/catalog"
	"toyshop/internal/logging"
	"toyshop/internal/models"
	"toyshop/internal/storefront"
)

const defaultAPIURL = "http://localhost:8080/api"

var errUsage = errors.New("usage: catalogctl <tree|toggle|reorder|browse> [flags]")

func main() {
	logger, err := logging.NewWithOutput(envOr("LOG_LEVEL", "warn"), "stderr")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := storefront.NewClient(envOr("CATALOG_API_URL", defaultAPIURL),
		storefront.WithToken(os.Getenv("CATALOG_API_TOKEN")),
		storefront.WithLogger(logger))

	if err := run(ctx, os.Args[1:], client, os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// API is the part of the storefront client the commands use.
type API interface {
	catalog.CategoryStore
	FetchAdminCategories(ctx context.Context) ([]models.Category, error)
	FetchProducts(ctx context.Context, includeHidden bool) ([]models.Product, error)
}

func run(ctx context.Context, args []string, api API, out io.Writer, logger *zap.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "tree":
		return runTree(ctx, args, api, out)
	case "toggle":
		return runToggle(ctx, args, api, out, logger)
	case "reorder":
		return runReorder(ctx, args, api, out, logger)
	case "browse":
		return runBrowse(ctx, args, api, out)
	}
	return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
}

func runTree(ctx context.Context, args []string, api API, out io.Writer) error {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	lang := fs.String("lang", "en", "display language")
	all := fs.Bool("all", false, "include inactive categories (needs a token)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		categories []models.Category
		err        error
	)
	if *all {
		categories, err = api.FetchAdminCategories(ctx)
	} else {
		categories, err = api.FetchCategories(ctx)
	}
	if err != nil {
		return err
	}
	if !*all {
		categories = catalog.VisibleOnly(categories)
	}
	return writeJSON(out, catalog.NewTreeBuilder().Build(categories, catalog.ParseLocale(*lang)))
}

func runToggle(ctx context.Context, args []string, api API, out io.Writer, logger *zap.Logger) error {
	fs := flag.NewFlagSet("toggle", flag.ContinueOnError)
	id := fs.Int64("id", 0, "category id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("toggle: -id is required")
	}

	current, err := api.FetchAdminCategories(ctx)
	if err != nil {
		return err
	}
	outcome := newAdminSync(api, logger).Toggle(ctx, current, *id)
	if outcome.NeedsReconcile() {
		return outcome.Err
	}
	return writeJSON(out, outcome.Categories)
}

func runReorder(ctx context.Context, args []string, api API, out io.Writer, logger *zap.Logger) error {
	fs := flag.NewFlagSet("reorder", flag.ContinueOnError)
	moved := fs.Int64("moved", 0, "id of the dragged category")
	target := fs.Int64("target", 0, "id of the category it was dropped on")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *moved <= 0 || *target <= 0 {
		return errors.New("reorder: -moved and -target are required")
	}

	current, err := api.FetchAdminCategories(ctx)
	if err != nil {
		return err
	}
	categorySync := newAdminSync(api, logger)
	outcome := categorySync.Reorder(ctx, current, *moved, *target)
	if outcome.NeedsReconcile() {
		if reconciled := categorySync.Reconcile(ctx); !reconciled.NeedsReconcile() {
			_ = writeJSON(out, reconciled.Categories)
		}
		return outcome.Err
	}
	return writeJSON(out, outcome.Categories)
}

// newAdminSync reconciles against the admin listing, the same list toggle and reorder start from.
func newAdminSync(api API, logger *zap.Logger) *catalog.CategorySync {
	return catalog.NewCategorySync(api,
		catalog.WithFetcher(api.FetchAdminCategories),
		catalog.WithSyncLogger(logger))
}

func runBrowse(ctx context.Context, args []string, api API, out io.Writer) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	genders := fs.String("gender", "", "comma separated gender codes or labels")
	brands := fs.String("brand", "", "comma separated brands")
	ages := fs.String("age", "", "comma separated age groups")
	minPrice := fs.String("min", "", "lowest price")
	maxPrice := fs.String("max", "", "highest price")
	query := fs.String("q", "", "search text")
	sortKey := fs.String("sort", string(catalog.SortPopular), "sort key")
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", catalog.DefaultPageSize, "24, 48 or 96")
	lang := fs.String("lang", "en", "display language")
	hidden := fs.Bool("hidden", false, "include hidden products (needs a token)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := api.FetchProducts(ctx, *hidden)
	if err != nil {
		return err
	}

	session := catalog.NewFilterSession(products)
	session.Open()
	for _, g := range splitList(*genders) {
		code, ok := models.NormalizeGender(g)
		if !ok {
			return fmt.Errorf("browse: unknown gender %q", g)
		}
		session.ToggleGender(code)
	}
	for _, b := range splitList(*brands) {
		session.ToggleBrand(b)
	}
	for _, a := range splitList(*ages) {
		session.ToggleAgeGroup(a)
	}
	if *minPrice != "" || *maxPrice != "" {
		bounds := session.Staged().PriceRange
		lo, err := parsePrice(*minPrice, bounds[0])
		if err != nil {
			return err
		}
		hi, err := parsePrice(*maxPrice, bounds[1])
		if err != nil {
			return err
		}
		session.SetPriceRange(lo, hi)
	}
	session.SetSearchText(*query)
	session.Confirm()

	session.SetSort(catalog.SortKey(*sortKey))
	session.SetPageSize(*pageSize)
	session.SetPage(*page)
	return writeJSON(out, session.View(catalog.ParseLocale(*lang)))
}

func parsePrice(s string, fallback float64) (float64, error) {
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("browse: invalid price %q", s)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
