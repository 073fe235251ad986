// Package report renders analysis results to the console and persists the
// session report.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/darmansah-zetnov/arsaa-dimension/internal/model"
)

// Renderer writes the formatted analysis to w.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a renderer for the given writer.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render prints the analysis result. Missing sections are skipped; zero
// values render as zeros. Nothing here ever fails the session.
func (r *Renderer) Render(result model.AnalysisResult) {
	fmt.Fprintln(r.w, "\n"+strings.Repeat("🎯", 25))
	fmt.Fprintln(r.w, "   ARSAA DIMENSION - HASIL ANALISIS PROPERTI")
	fmt.Fprintln(r.w, strings.Repeat("🎯", 25))

	fmt.Fprintf(r.w, "\n🏆 TRUST SCORE: %d/100\n", result.TrustScore)
	fmt.Fprintf(r.w, "   Status: %s\n", trustStatus(result.TrustScore))

	if len(result.RiskAnalysis) > 0 {
		fmt.Fprintln(r.w, "\n📊 ANALISIS RISIKO:")
		width := 0
		for _, key := range model.RiskOrder {
			if _, ok := result.RiskAnalysis[key]; ok {
				if w := runewidth.StringWidth(riskLabel(key)); w > width {
					width = w
				}
			}
		}
		for _, key := range model.RiskOrder {
			score, ok := result.RiskAnalysis[key]
			if !ok {
				continue
			}
			label := runewidth.FillRight(riskLabel(key), width)
			fmt.Fprintf(r.w, "   %s  %3d/100 %s\n", label, score, riskStatus(score))
		}
	}

	insights := result.MarketInsights
	if insights != (model.MarketInsights{}) {
		fmt.Fprintln(r.w, "\n📈 MARKET INSIGHTS:")
		fmt.Fprintf(r.w, "   Tren Harga: %s\n", strings.ToUpper(orNA(insights.PriceTrend)))
		fmt.Fprintf(r.w, "   Level Demand: %s\n", strings.ToUpper(orNA(insights.DemandLevel)))
		fmt.Fprintf(r.w, "   Investment Grade: %s\n", orNA(insights.InvestmentGrade))
	}

	if result.ExecutiveSummary != "" {
		fmt.Fprintln(r.w, "\n📋 RINGKASAN EKSEKUTIF:")
		fmt.Fprintf(r.w, "   %s\n", result.ExecutiveSummary)
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintln(r.w, "\n💡 REKOMENDASI STRATEGIS:")
		for i, rec := range result.Recommendations {
			fmt.Fprintf(r.w, "   %d. %s\n", i+1, rec)
		}
	}

	if len(result.RiskFactors) > 0 {
		fmt.Fprintln(r.w, "\n⚠️  FAKTOR RISIKO UTAMA:")
		for _, factor := range result.RiskFactors {
			fmt.Fprintf(r.w, "   • %s\n", factor)
		}
	}

	if len(result.CompetitiveAdvantages) > 0 {
		fmt.Fprintln(r.w, "\n✨ KEUNGGULAN KOMPETITIF:")
		for _, advantage := range result.CompetitiveAdvantages {
			fmt.Fprintf(r.w, "   • %s\n", advantage)
		}
	}
}

func trustStatus(score int) string {
	switch {
	case score >= 80:
		return "🟢 SANGAT DIREKOMENDASIKAN"
	case score >= 60:
		return "🟡 DIREKOMENDASIKAN DENGAN CATATAN"
	default:
		return "🔴 PERLU PERTIMBANGAN MENDALAM"
	}
}

func riskStatus(score int) string {
	switch {
	case score <= 30:
		return "🟢 Rendah"
	case score <= 60:
		return "🟡 Sedang"
	default:
		return "🔴 Tinggi"
	}
}

// riskLabel turns a snake_case risk key into a display label.
func riskLabel(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Save writes the full report as indented UTF-8 JSON in dir and returns the
// file path. One file per run, timestamp-named, never rewritten.
func Save(dir string, rep model.Report) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return "", fmt.Errorf("marshal report failed: %w", err)
	}

	name := fmt.Sprintf("arsaa_analysis_%s.json", time.Now().Format("20060102_150405"))
	path := joinDir(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write report failed: %w", err)
	}

	return path, nil
}

// SaveRaw persists the unparsed AI response so no output is silently lost
// when extraction fails.
func SaveRaw(dir string, text string) (string, error) {
	name := fmt.Sprintf("arsaa_raw_%d.txt", time.Now().Unix())
	path := joinDir(dir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write raw response failed: %w", err)
	}

	return path, nil
}

func joinDir(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return strings.TrimRight(dir, "/") + "/" + name
}
