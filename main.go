package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	categorize := flag.Bool("categorize", false, "assign subjects from question_no ranges and exit")
	verify := flag.Bool("verify", false, "print the per-subject question summary and exit")
	flag.Parse()

	cfg := LoadConfig()

	// 1) DB
	db, err := OpenDB(cfg.DBDriver, cfg.DBDSN, NewGormLogger(cfg.SQLLogLevel))
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// 2) Seed (if empty)
	if isEmpty, _ := IsQuestionTableEmpty(db); isEmpty {
		if _, err := os.Stat(cfg.SeedPath); err == nil {
			n, rep, err := SeedBank(context.Background(), db, cfg.SeedPath, DefaultCategoryRanges)
			if err != nil {
				log.Fatalf("seed: %v", err)
			}
			log.Printf("Seeded %d questions from %s (%d labeled, %d without subject)",
				n, cfg.SeedPath, rep.TotalUpdated, rep.Uncategorized)
		} else {
			log.Printf("No seed file at %s; running with empty DB", cfg.SeedPath)
		}
	}

	// 3) Offline tooling
	if *categorize {
		if err := runCategorize(db); err != nil {
			log.Fatalf("categorize: %v", err)
		}
		return
	}
	if *verify {
		if err := runVerify(db); err != nil {
			log.Fatalf("verify: %v", err)
		}
		return
	}

	// 4) Server
	r := NewRouter(db, cfg, newRand(cfg.RandomSeed))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("Listening on :%s (driver=%s, SecureCookies=%v)", cfg.Port, cfg.DBDriver, cfg.SecureCookies)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("run: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func NewRouter(db *gorm.DB, cfg Config, rng *rand.Rand) *gin.Engine {
	r := gin.Default()

	// --- CORS: configured origins + any localhost:port ---
	allowed := map[string]bool{}
	for _, o := range cfg.CORSOrigins {
		allowed[o] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if allowed[origin] {
				return true
			}
			return strings.HasPrefix(origin, "http://localhost:")
		},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	sel := NewSelector(db, rng)
	scorer := NewScorer(db)
	seen := NewSeenStore(db)

	api := r.Group("/api/v1")
	api.Use(EnsureVisitor(db, cfg.SecureCookies))
	{
		api.GET("/subjects", ListSubjects(db))

		// Exam mode
		api.POST("/exams", StartExam(sel, seen))
		api.POST("/exams/submit", SubmitExam(db, scorer))

		// Visitor
		api.GET("/me", GetMe(db, seen))
		api.DELETE("/me/seen", ResetSeen(seen))
		api.POST("/me/restore", RestoreVisitor(db, cfg.SecureCookies))

		// History & stats
		api.GET("/attempts", ListMyAttempts(db))
		api.GET("/attempts/:id", GetMyAttempt(db))
		api.GET("/stats", Stats(db, seen))
	}
	return r
}

func runCategorize(db *gorm.DB) error {
	rep, err := Categorize(context.Background(), db, DefaultCategoryRanges)
	if err != nil {
		return err
	}
	for i, u := range rep.Updated {
		r := DefaultCategoryRanges[i]
		fmt.Printf("Updated '%s': %d questions (Range: %d-%d)\n", u.Subject, u.Count, r.From, r.To)
	}
	fmt.Printf("\nTotal questions updated: %d\n", rep.TotalUpdated)
	if rep.Uncategorized > 0 {
		fmt.Printf("WARNING: %d questions still have no subject.\n", rep.Uncategorized)
	}
	return nil
}

func runVerify(db *gorm.DB) error {
	rep, err := SubjectSummary(context.Background(), db)
	if err != nil {
		return err
	}
	fmt.Println("--- Database Subject Summary ---")
	for _, s := range rep.Known {
		fmt.Printf("'%s': %d questions\n", s.Subject, s.Count)
	}
	fmt.Printf("\nTotal questions under known subjects: %d\n", rep.KnownTotal)
	if len(rep.Other) > 0 {
		fmt.Println("\nOther subjects found in database:")
		for _, s := range rep.Other {
			fmt.Printf("'%s': %d questions\n", s.Subject, s.Count)
		}
	} else {
		fmt.Println("\nNo other subjects found.")
	}
	fmt.Printf("Questions without subject: %d\n", rep.Unlabeled)
	return nil
}
