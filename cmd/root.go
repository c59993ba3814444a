// Package cmd provides the root command and CLI setup for gofold.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gofold.dev/pkg/gofold/internal/adapter"
	"gofold.dev/pkg/gofold/internal/controller"
	"gofold.dev/pkg/gofold/internal/domain"
	m "gofold.dev/pkg/gofold/internal/model"
)

var goFileAdapter adapter.GoFileAdapter
var sourceFSAdapter adapter.SourceFSAdapter
var imageLoader adapter.ImageLoader
var pipeline adapter.Pipeline
var renderer adapter.Renderer
var store *lazyStore
var workflow domain.Workflow
var ui controller.UI

var storePathFlag string
var storeDriverFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	imageLoader = adapter.NewLocalImageLoader(sourceFSAdapter, viper.GetInt(loadWorkersKey))
	pipeline = adapter.NewGoPipeline(goFileAdapter)
	renderer = adapter.NewTextRenderer()
	store = &lazyStore{}
	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		imageLoader,
		pipeline,
		renderer,
		store,
		ui,
	)
}

const fileArgsHelp = `Files are loaded in the order given; each one occupies its own range of
positions, so the same file may sit at a different base from run to run.
Folds are saved relative to their file and survive that.`

const rootLongDescription = `Gofold collapses Go code blocks into a "{ ... }" placeholder and remembers
them. Saved folds are re-applied every time a file is rendered again.

` + fileArgsHelp

const foldLongDescription = `Fold the block that opens on FILE:LINE.

Additional FILES are loaded before FILE.

` + fileArgsHelp

const unfoldLongDescription = `Unfold the block that opens on FILE:LINE and forget it.

Additional FILES are loaded before FILE.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gofold",
		Short: "Fold Go code blocks",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd creates a root command with the persistent flags but without
// subcommands.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&storePathFlag, storeFlagName, viper.GetString(storePathKey), "fold database file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(storeFlagName), storePathKey)

	cmd.PersistentFlags().StringVar(&storeDriverFlag, storeDriverFlagName, viper.GetString(storeDriverKey), "fold store driver (sqlite or memory)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(storeDriverFlagName), storeDriverKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if closeErr := store.Close(); closeErr != nil {
		slog.Error("failed to close fold store", "error", closeErr)
	}

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// parseFileLine splits a FILE:LINE argument.
func parseFileLine(arg string) (m.Path, int, error) {
	i := strings.LastIndex(arg, ":")
	if i <= 0 || i == len(arg)-1 {
		return "", 0, fmt.Errorf("expected FILE:LINE, got %q", arg)
	}

	line, err := strconv.Atoi(arg[i+1:])
	if err != nil || line < 1 {
		return "", 0, fmt.Errorf("invalid line in %q", arg)
	}

	return m.Path(arg[:i]), line, nil
}

// lazyStore opens the configured store on first use, so commands that never
// touch folds never create a database.
type lazyStore struct {
	once  sync.Once
	store adapter.Store
	err   error
}

func (s *lazyStore) open(ctx context.Context) (adapter.Store, error) {
	s.once.Do(func() {
		s.store, s.err = openStore(ctx, viper.GetString(storeDriverKey), viper.GetString(storePathKey))
	})

	return s.store, s.err
}

func (s *lazyStore) Put(ctx context.Context, namespace string, tag byte, blob []byte) error {
	st, err := s.open(ctx)
	if err != nil {
		return err
	}

	return st.Put(ctx, namespace, tag, blob)
}

func (s *lazyStore) Get(ctx context.Context, namespace string, tag byte) ([]byte, error) {
	st, err := s.open(ctx)
	if err != nil {
		return nil, err
	}

	return st.Get(ctx, namespace, tag)
}

func (s *lazyStore) Close() error {
	if s.store == nil {
		return nil
	}

	return s.store.Close()
}

func openStore(ctx context.Context, driver, path string) (adapter.Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case storeDriverMemory:
		return adapter.NewMemoryStore(), nil
	case storeDriverSQLite, "":
		st, err := adapter.NewSQLiteStore(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to open fold store %s: %w", path, err)
		}

		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
