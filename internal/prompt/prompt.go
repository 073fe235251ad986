// Package prompt renders the fixed Indonesian analysis prompt sent to the
// AI. The JSON schema spelled out at the end of the template is the contract
// the response extractor relies on; keep them in sync.
package prompt

import (
	"fmt"
	"strings"

	"github.com/darmansah-zetnov/arsaa-dimension/internal/model"
)

// maxNewsItems caps how many article bullets the prompt embeds.
const maxNewsItems = 5

// noNewsLine replaces the bullet list when no articles were gathered.
const noNewsLine = "Tidak ada berita relevan ditemukan."

type cityEntry struct {
	keyword string
	value   string
}

// cityContexts maps location-name keywords to region descriptions. Checked
// in order: more specific names must come before their substrings, so
// "tangerang selatan" is matched before "tangerang".
var cityContexts = []cityEntry{
	{"jakarta", "DKI Jakarta - Pusat bisnis dan pemerintahan"},
	{"tangerang selatan", "Tangerang Selatan - Area berkembang dengan infrastruktur modern"},
	{"tangerang", "Tangerang - Kawasan industri dan residential"},
	{"bekasi", "Bekasi - Buffer zone Jakarta dengan pertumbuhan pesat"},
	{"bogor", "Bogor - Area sejuk dengan akses ke Jakarta"},
	{"depok", "Depok - Kota satelit dengan banyak universitas"},
}

// genericContext is the fallthrough when no keyword matches.
const genericContext = "Area Jabodetabek - Kawasan metropolitan Jakarta"

// CityContext derives the region description from a geocoded display name.
func CityContext(displayName string) string {
	lower := strings.ToLower(displayName)
	for _, entry := range cityContexts {
		if strings.Contains(lower, entry.keyword) {
			return entry.value
		}
	}
	return genericContext
}

// newsCities selects the news-search city from a display name. Same
// ordering rule as cityContexts.
var newsCities = []cityEntry{
	{"tangerang selatan", "Tangerang Selatan"},
	{"tangerang", "Tangerang"},
	{"bekasi", "Bekasi"},
	{"bogor", "Bogor"},
	{"depok", "Depok"},
}

// NewsCity returns the city name used as the news search keyword, defaulting
// to Jakarta when the display name matches no satellite city.
func NewsCity(displayName string) string {
	lower := strings.ToLower(displayName)
	for _, entry := range newsCities {
		if strings.Contains(lower, entry.keyword) {
			return entry.value
		}
	}
	return "Jakarta"
}

const promptTemplate = `
Anda adalah ARSAA AI, sistem analisis properti terdepan untuk kawasan Jabodetabek.

=== DATA PROPERTI ===
Alamat: %s
Lokasi Terverifikasi: %s
Koordinat: %v, %v
Konteks Wilayah: %s

=== PENILAIAN RISIKO USER ===
• Risiko Banjir: %s
• Risiko Gempa: %s
• Status Legal: %s
• Double Listing: %s
• Tingkat Kriminalitas: %s

=== FASILITAS & AKSES ===
Fasilitas: %s
Akses Transportasi: %s

=== INTELIGENS BERITA TERKINI ===
%s

=== INSTRUKSI ANALISIS ===
Sebagai ARSAA AI, berikan analisis komprehensif dalam format JSON yang valid (tanpa markdown):

{
  "trust_score": [integer 0-100, skor kepercayaan investasi],
  "risk_analysis": {
    "flood": [integer 0-100, 0=aman, 100=sangat berisiko],
    "earthquake": [integer 0-100],
    "legal": [integer 0-100],
    "crime": [integer 0-100],
    "double_listing": [integer 0-100],
    "accessibility": [integer 0-100]
  },
  "market_insights": {
    "price_trend": "[naik/stabil/turun]",
    "demand_level": "[tinggi/sedang/rendah]",
    "investment_grade": "[A/B/C/D]"
  },
  "executive_summary": "[Ringkasan eksekutif 6-8 kalimat untuk investor property, gunakan konteks berita dan lokasi spesifik]",
  "recommendations": [
    "[Rekomendasi aksi 1]",
    "[Rekomendasi aksi 2]",
    "[Rekomendasi aksi 3]",
    "[Rekomendasi aksi 4]"
  ],
  "risk_factors": [
    "[Faktor risiko utama 1]",
    "[Faktor risiko utama 2]",
    "[Faktor risiko utama 3]"
  ],
  "competitive_advantages": [
    "[Keunggulan kompetitif 1]",
    "[Keunggulan kompetitif 2]"
  ]
}

Gunakan pengetahuan mendalam tentang pasar properti Jabodetabek, tren infrastruktur, dan analisis risiko profesional.
`

// Compose renders the analysis prompt. Pure function of its inputs.
func Compose(input model.PropertyInput, geo model.GeoResult, articles []model.NewsArticle) string {
	location := geo.DisplayName
	if location == "" {
		location = input.Address
	}

	var news strings.Builder
	for i, article := range articles {
		if i >= maxNewsItems {
			break
		}
		fmt.Fprintf(&news, "• %s - %s\n", article.Title, article.Source)
	}
	newsContext := news.String()
	if newsContext == "" {
		newsContext = noNewsLine
	}

	return fmt.Sprintf(promptTemplate,
		input.Address,
		location,
		geo.Latitude, geo.Longitude,
		CityContext(location),
		orUnknown(input.FloodRisk),
		orUnknown(input.EarthquakeRisk),
		orUnknown(input.LegalStatus),
		orUnknown(input.DoubleListing),
		orUnknown(input.CrimeLevel),
		orUnspecified(input.Facilities),
		orUnspecified(input.TransportAccess),
		newsContext,
	)
}

func orUnknown(s string) string {
	if s == "" {
		return "tidak diketahui"
	}
	return s
}

func orUnspecified(s string) string {
	if s == "" {
		return "Tidak disebutkan"
	}
	return s
}
