// Command arsaa runs one interactive property-analysis session for the
// Jabodetabek area.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/darmansah-zetnov/arsaa-dimension/internal/config"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/gemini"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/logger"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/session"
)

const configPath = "config.yaml"

func main() {
	os.Exit(run())
}

func run() int {
	printBanner()

	// Optional .env for local setups; real deployments export the keys.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Konfigurasi tidak dapat dimuat: %v\n", err)
		return 1
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Logger tidak dapat diinisialisasi: %v\n", err)
		return 1
	}

	if !validateKeys(cfg) {
		fmt.Println("\n❌ API configuration required:")
		fmt.Println("   export GEMINI_KEY='your-gemini-api-key'")
		fmt.Println("   export NEWSAPI_KEY='your-newsapi-key'  # optional")
		return 1
	}
	fmt.Println("✅ System ready for analysis")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := 0
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Errorf("Unexpected error: %v\n%s", r, debug.Stack())
			}
		}()

		if err := session.New(cfg).Run(ctx); err != nil {
			switch {
			case errors.Is(err, session.ErrEmptyAddress):
				// Already reported by the session.
			case errors.Is(err, gemini.ErrMissingKey):
				logger.Log.Errorf("Gemini API key not configured")
			default:
				logger.Log.Errorf("Session failed: %v", err)
			}
			code = 1
		}
	}()

	if ctx.Err() != nil {
		fmt.Println("\n⏹️  Analysis interrupted by user")
	}
	fmt.Println("\n🏢 Terima kasih telah menggunakan ARSAA Dimension AI!")

	return code
}

func printBanner() {
	fmt.Println("🏢" + strings.Repeat("=", 55) + "🏢")
	fmt.Println("      ARSAA DIMENSION MVP - PROPERTY INTELLIGENCE")
	fmt.Printf("                 Version %s\n", session.Version)
	fmt.Println("🎯" + strings.Repeat("=", 55) + "🎯")
	fmt.Println("📍 Focus Area: JABODETABEK (Jakarta, Bogor, Depok, Tangerang, Bekasi)")
	fmt.Println("🤖 Powered by: Gemini AI + Real-time News Intelligence")
	fmt.Println("📊 Features: Risk Analysis | Market Insights | Investment Recommendations")
	fmt.Println(strings.Repeat("=", 64))
}

// validateKeys reports the key status and returns false when the required
// Gemini key is missing or malformed. The news key is optional; the feed
// fallback covers its absence.
func validateKeys(cfg *config.Config) bool {
	fmt.Println("\n🔑 API KEY VALIDATION")
	fmt.Println(strings.Repeat("=", 40))

	ok := true
	switch err := cfg.ValidateGeminiKey(); {
	case errors.Is(err, config.ErrMissingGeminiKey):
		fmt.Println("❌ Gemini API: Missing")
		ok = false
	case errors.Is(err, config.ErrBadGeminiKey):
		fmt.Println("❌ Gemini API: Invalid format")
		ok = false
	default:
		fmt.Println("✅ Gemini API: Valid format")
	}

	if cfg.HasNewsKey() {
		if cfg.NewsKeyLooksValid() {
			fmt.Println("✅ NewsAPI: Valid format")
		} else {
			fmt.Println("⚠️  NewsAPI: Invalid format")
		}
	} else {
		fmt.Println("⚠️  NewsAPI: Missing (will use RSS fallback)")
	}

	return ok
}
