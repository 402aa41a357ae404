package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/basel-ax/cursorsmith/internal/archive"
	"github.com/basel-ax/cursorsmith/internal/config"
	"github.com/basel-ax/cursorsmith/internal/domain"
	"github.com/basel-ax/cursorsmith/internal/infrastructure/gemini"
	"github.com/basel-ax/cursorsmith/internal/repository"
	"github.com/basel-ax/cursorsmith/internal/server"
	"github.com/basel-ax/cursorsmith/internal/service"
	"github.com/basel-ax/cursorsmith/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("Interrupted: %v", err)
			os.Exit(130)
		}
		log.Fatalf("Error: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "cursorsmith",
		Short:         "Generate themed pixel-art cursor sets",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			log.Println("Verbose logging enabled")
		} else {
			log.SetFlags(log.Ldate | log.Ltime)
		}
	}

	root.AddCommand(newGenerateCommand(), newServeCommand(), newWorkerCommand())
	return root
}

func loadService() (*config.Config, *service.CursorGenerationService, error) {
	log.Println("Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	client := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.RequestTimeout)
	svc := service.NewCursorGenerationService(client, cfg.RequestDelay,
		service.WithThemeValidator(service.NewThemeValidator(cfg.MaxThemeLength, cfg.BlockedWords)),
	)
	log.Printf("Cursor generation service initialized (model %s)", cfg.GeminiModel)
	return cfg, svc, nil
}

func newGenerateCommand() *cobra.Command {
	var (
		theme   string
		outDir  string
		singles bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a cursor set for a theme and save it as a zip bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := loadService()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.OutputDir
			}

			set, err := svc.Generate(cmd.Context(), theme)
			if err != nil {
				return err
			}

			path, err := archive.SaveZip(outDir, archive.BundleName, set)
			if err != nil {
				return err
			}
			log.Printf("Saved %d cursors to %s", set.Count(), path)

			if singles {
				for _, v := range domain.Variants() {
					img := set.Get(v)
					if img == nil {
						log.Printf("No %s cursor was generated", v)
						continue
					}
					p, err := archive.SaveSingle(outDir, img)
					if err != nil {
						return err
					}
					log.Printf("Saved %s", p)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "Cursor theme, e.g. \"pink donut\"")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (defaults to CURSOR_OUTPUT_DIR)")
	cmd.Flags().BoolVar(&singles, "singles", false, "Also save every cursor as cursor-<variant>.png")
	_ = cmd.MarkFlagRequired("theme")
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the cursor generation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := loadService()
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:    cfg.HTTPAddr,
				Handler: server.New(svc, log.Default()).Handler(),
			}

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Listening on %s", cfg.HTTPAddr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
				log.Println("Shutting down gracefully...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
}

func newWorkerCommand() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Export themes queued in the database as zip bundles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := loadService()
			if err != nil {
				return err
			}
			if err := cfg.ValidateDB(); err != nil {
				return fmt.Errorf("invalid database configuration: %w", err)
			}

			log.Println("Initializing database connection...")
			db, err := sql.Open("postgres", cfg.GetDSN())
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
			db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
			db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

			repo := repository.NewPostgresThemeRepository(db)
			if err := repo.EnsureSchema(cmd.Context()); err != nil {
				return fmt.Errorf("failed to prepare schema: %w", err)
			}
			log.Println("Database connection established")

			w := worker.New(repo, svc, cfg.OutputDir, log.Default())
			if once {
				return w.Drain(cmd.Context())
			}
			log.Printf("Starting scheduled worker (%s)...", cfg.WorkerCron)
			return w.Schedule(cmd.Context(), cfg.WorkerCron)
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "Drain the queue once and exit")
	return cmd
}
