// Package session sequences one analysis run: collect input, geocode,
// gather news, compose the prompt, call the AI, extract the JSON answer,
// render and persist. Every stage runs exactly once; no stage is retried.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/darmansah-zetnov/arsaa-dimension/internal/config"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/extract"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/gemini"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/geocode"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/logger"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/model"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/news"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/prompt"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/report"
)

// Version is the tool version recorded in every report.
const Version = "1.0 MVP"

// ErrEmptyAddress aborts the session before any network activity.
var ErrEmptyAddress = errors.New("address must not be empty")

// Geocoder resolves a free-text address.
type Geocoder interface {
	Search(ctx context.Context, address string) (*model.GeoResult, error)
}

// Searcher is the keyword-search news producer.
type Searcher interface {
	Fetch(ctx context.Context, city string, limit int) ([]model.NewsArticle, error)
}

// Feeder is the syndication-feed news producer.
type Feeder interface {
	Fetch(ctx context.Context) []model.NewsArticle
}

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Session drives one interactive analysis run.
type Session struct {
	cfg       *config.Config
	geocoder  Geocoder
	searcher  Searcher
	feeder    Feeder
	generator Generator
	in        *bufio.Reader
	out       io.Writer
	outputDir string
	startedAt time.Time
}

// New wires a session with the real clients, reading from stdin and writing
// to stdout.
func New(cfg *config.Config) *Session {
	return NewWithDeps(cfg,
		geocode.NewClient(cfg.Geocode),
		news.NewSearchClient(cfg.News),
		news.NewFeedFetcher(cfg.News.RSSFeeds),
		gemini.NewClient(cfg.Gemini),
		os.Stdin, os.Stdout, "",
	)
}

// NewWithDeps wires a session with injected dependencies. Reports land in
// outDir; empty means the working directory.
func NewWithDeps(cfg *config.Config, g Geocoder, s Searcher, f Feeder, gen Generator, in io.Reader, out io.Writer, outDir string) *Session {
	return &Session{
		cfg:       cfg,
		geocoder:  g,
		searcher:  s,
		feeder:    f,
		generator: gen,
		in:        bufio.NewReader(in),
		out:       out,
		outputDir: outDir,
		startedAt: time.Now(),
	}
}

// Run executes the whole session. It returns an error only for fatal
// configuration problems (empty address, unusable AI key); every external
// failure degrades to a documented fallback and the run still completes.
func (s *Session) Run(ctx context.Context) error {
	input, err := s.collectInput()
	if err != nil {
		return err
	}

	geo := s.resolveLocation(ctx, input.Address)
	articles := s.gatherNews(ctx, geo)

	fmt.Fprintln(s.out, "\n🤖 ARSAA AI ANALYSIS ENGINE")
	fmt.Fprintln(s.out, strings.Repeat("-", 32))
	fmt.Fprintln(s.out, "⚙️  Memproses data dengan Gemini AI...")

	promptText := prompt.Compose(input, geo, articles)

	raw, err := s.generator.Generate(ctx, promptText)
	if err != nil {
		if errors.Is(err, gemini.ErrMissingKey) {
			return err
		}
		logger.Log.Errorf("Gagal mendapatkan respons dari AI: %v", err)
		fmt.Fprintln(s.out, "❌ Analysis failed - please check your API configuration")
		return nil
	}

	obj, err := extract.Object(raw)
	if err != nil {
		logger.Log.Warnf("Gagal memparse hasil AI, menyimpan raw response: %v", err)
		path, saveErr := report.SaveRaw(s.outputDir, raw)
		if saveErr != nil {
			logger.Log.Errorf("Gagal menyimpan raw response: %v", saveErr)
			return nil
		}
		fmt.Fprintf(s.out, "💾 Raw response saved: %s\n", path)
		return nil
	}

	result := model.DecodeAnalysis(obj)
	report.NewRenderer(s.out).Render(result)

	rep := model.Report{
		Version:           Version,
		SessionID:         s.startedAt.Unix(),
		ReportID:          uuid.NewString(),
		AnalysisTimestamp: time.Now().Format(time.RFC3339),
		PropertyInput:     input,
		GeolocationData:   geo,
		NewsIntelligence:  newsSection(articles),
		AIAnalysis:        obj,
		RawAIResponse:     raw,
		SystemInfo: model.SystemInfo{
			Model:     s.generator.Model(),
			UserAgent: s.cfg.Geocode.UserAgent,
		},
	}

	path, err := report.Save(s.outputDir, rep)
	if err != nil {
		logger.Log.Errorf("Gagal menyimpan laporan: %v", err)
		return nil
	}
	fmt.Fprintf(s.out, "\n💾 LAPORAN TERSIMPAN: %s\n", path)

	return nil
}

// collectInput walks the interactive prompts. Only the address is required;
// every risk field substitutes its documented default on empty input.
func (s *Session) collectInput() (model.PropertyInput, error) {
	fmt.Fprintln(s.out, "\n📝 INPUT DATA PROPERTI")
	fmt.Fprintln(s.out, strings.Repeat("-", 30))

	address := s.ask("🏠 Alamat properti (contoh: 'BSD City, Tangerang Selatan'):\n> ", "")
	if address == "" {
		fmt.Fprintln(s.out, "❌ Alamat tidak boleh kosong")
		return model.PropertyInput{}, ErrEmptyAddress
	}

	fmt.Fprintln(s.out, "\n⚠️  PENILAIAN RISIKO (tekan Enter untuk default)")
	fmt.Fprintln(s.out, strings.Repeat("-", 45))

	input := model.PropertyInput{
		Address:        address,
		FloodRisk:      s.ask("🌊 Risiko Banjir [rendah/sedang/tinggi] (default: sedang): ", "sedang"),
		EarthquakeRisk: s.ask("🌍 Risiko Gempa [rendah/sedang/tinggi] (default: sedang): ", "sedang"),
		LegalStatus:    s.ask("📜 Status Legal [lengkap/tidak lengkap] (default: lengkap): ", "lengkap"),
		DoubleListing:  s.ask("🔄 Double Listing [ya/tidak] (default: tidak): ", "tidak"),
		CrimeLevel:     s.ask("🚨 Tingkat Kriminalitas [rendah/sedang/tinggi] (default: sedang): ", "sedang"),
	}

	fmt.Fprintln(s.out, "\n🏗️  INFO TAMBAHAN (opsional)")
	fmt.Fprintln(s.out, strings.Repeat("-", 30))

	input.Facilities = s.ask("🏪 Fasilitas sekitar: ", "")
	input.TransportAccess = s.ask("🚌 Akses transportasi: ", "")
	input.Timestamp = time.Now().Format(time.RFC3339)

	return input, nil
}

// ask prints a prompt and reads one trimmed line, substituting def on empty
// input.
func (s *Session) ask(promptText, def string) string {
	fmt.Fprint(s.out, promptText)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// resolveLocation geocodes the address, substituting the Jakarta-area
// centroid estimate when the lookup misses or fails.
func (s *Session) resolveLocation(ctx context.Context, address string) model.GeoResult {
	fmt.Fprintln(s.out, "\n🗺️  GEOCODING ANALYSIS")
	fmt.Fprintln(s.out, strings.Repeat("-", 25))
	fmt.Fprintf(s.out, "📍 Mencari lokasi: %s\n", address)

	geo, err := s.geocoder.Search(ctx, address)
	if err != nil || geo == nil {
		if err != nil && !errors.Is(err, geocode.ErrNoResults) {
			logger.Log.Warnf("Geocoding error: %v", err)
		}
		fmt.Fprintln(s.out, "⚠️ Lokasi tidak ditemukan di Jabodetabek, menggunakan estimasi")
		return model.FallbackGeo(address)
	}

	fmt.Fprintf(s.out, "✅ Lokasi ditemukan: %s\n", geo.DisplayName)
	fmt.Fprintf(s.out, "📌 Koordinat: %.4f, %.4f\n", geo.Latitude, geo.Longitude)

	return *geo
}

// gatherNews applies the producer selection policy: the search API is tried
// only when a key is configured; any empty or failed result falls back to
// the feeds. The two producers are never merged.
func (s *Session) gatherNews(ctx context.Context, geo model.GeoResult) []model.NewsArticle {
	fmt.Fprintln(s.out, "\n📰 MARKET INTELLIGENCE GATHERING")
	fmt.Fprintln(s.out, strings.Repeat("-", 35))

	city := prompt.NewsCity(geo.DisplayName)
	fmt.Fprintf(s.out, "🔍 Target pencarian: %s\n", city)

	var articles []model.NewsArticle
	if s.cfg.HasNewsKey() {
		fmt.Fprintln(s.out, "📡 Mengakses NewsAPI...")
		fetched, err := s.searcher.Fetch(ctx, city, news.DefaultSearchLimit)
		if err != nil {
			logger.Log.Warnf("NewsAPI error: %v", err)
		} else {
			articles = fetched
		}
	}

	if len(articles) == 0 {
		fmt.Fprintln(s.out, "📡 Menggunakan RSS feeds...")
		articles = s.feeder.Fetch(ctx)
	}

	fmt.Fprintf(s.out, "✅ Berhasil mengumpulkan %d berita properti\n", len(articles))

	return articles
}

// newsSection keeps at most the top 10 articles in the persisted report.
func newsSection(articles []model.NewsArticle) model.NewsIntelligence {
	kept := articles
	if len(kept) > 10 {
		kept = kept[:10]
	}
	return model.NewsIntelligence{
		TotalArticles: len(articles),
		Articles:      kept,
	}
}
