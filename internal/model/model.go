// Package model defines the entities passed between the analysis stages.
package model

import "encoding/json"

// PropertyInput holds the user-entered property details for one session.
// It is constructed once and never mutated.
type PropertyInput struct {
	Address         string `json:"address"`
	FloodRisk       string `json:"flood_risk"`
	EarthquakeRisk  string `json:"earthquake_risk"`
	LegalStatus     string `json:"legal_status"`
	DoubleListing   string `json:"double_listing"`
	CrimeLevel      string `json:"crime_level"`
	Facilities      string `json:"facilities"`
	TransportAccess string `json:"transport_access"`
	Timestamp       string `json:"timestamp"`
}

// Geo result sources.
const (
	GeoSourceNominatim = "nominatim"
	GeoSourceFallback  = "fallback"
)

// Fallback coordinates: Jakarta-area centroid used when geocoding misses.
const (
	FallbackLatitude  = -6.2
	FallbackLongitude = 106.8
)

// GeoResult is a geocoded location. Confidence is the number of candidates
// the provider returned; more candidates means a more ambiguous match, so a
// higher number actually means lower certainty. Kept literal on purpose.
type GeoResult struct {
	DisplayName       string            `json:"display_name"`
	Latitude          float64           `json:"latitude"`
	Longitude         float64           `json:"longitude"`
	AddressComponents map[string]string `json:"address_components,omitempty"`
	OSMID             int64             `json:"osm_id,omitempty"`
	Source            string            `json:"source"`
	Confidence        int               `json:"confidence"`
}

// FallbackGeo returns the synthetic estimate used when the address cannot be
// resolved inside Jabodetabek.
func FallbackGeo(address string) GeoResult {
	return GeoResult{
		DisplayName: "Area " + address + " (estimasi)",
		Latitude:    FallbackLatitude,
		Longitude:   FallbackLongitude,
		Source:      GeoSourceFallback,
		Confidence:  0,
	}
}

// NewsArticle is the single article shape produced by both the search-API
// and the feed producers. Published stays a free-form string; the upstream
// formats are not worth parsing for a prompt bullet.
type NewsArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Published   string `json:"published"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

// MarketInsights carries the AI's qualitative market read.
type MarketInsights struct {
	PriceTrend      string `json:"price_trend"`
	DemandLevel     string `json:"demand_level"`
	InvestmentGrade string `json:"investment_grade"`
}

// AnalysisResult is the expected shape of the AI's JSON answer. Missing keys
// stay zero values; they are rendered as such, never treated as errors.
type AnalysisResult struct {
	TrustScore            int            `json:"trust_score"`
	RiskAnalysis          map[string]int `json:"risk_analysis"`
	MarketInsights        MarketInsights `json:"market_insights"`
	ExecutiveSummary      string         `json:"executive_summary"`
	Recommendations       []string       `json:"recommendations"`
	RiskFactors           []string       `json:"risk_factors"`
	CompetitiveAdvantages []string       `json:"competitive_advantages"`
}

// RiskOrder is the display order for the named risks.
var RiskOrder = []string{"flood", "earthquake", "legal", "crime", "double_listing", "accessibility"}

// DecodeAnalysis converts the extracted JSON object into an AnalysisResult.
// Best effort: fields that do not fit the expected shape are simply left at
// their zero value.
func DecodeAnalysis(obj map[string]any) AnalysisResult {
	var result AnalysisResult

	raw, err := json.Marshal(obj)
	if err != nil {
		return result
	}
	// Partial decode is fine here; whatever matched is kept.
	_ = json.Unmarshal(raw, &result)

	return result
}

// NewsIntelligence is the news section of the persisted report.
type NewsIntelligence struct {
	TotalArticles int           `json:"total_articles"`
	Articles      []NewsArticle `json:"articles"`
}

// SystemInfo records which model and client identity produced the report.
type SystemInfo struct {
	Model     string `json:"model"`
	UserAgent string `json:"user_agent"`
}

// Report is the aggregate written once at the end of a session.
type Report struct {
	Version           string           `json:"arsaa_version"`
	SessionID         int64            `json:"session_id"`
	ReportID          string           `json:"report_id"`
	AnalysisTimestamp string           `json:"analysis_timestamp"`
	PropertyInput     PropertyInput    `json:"property_input"`
	GeolocationData   GeoResult        `json:"geolocation_data"`
	NewsIntelligence  NewsIntelligence `json:"news_intelligence"`
	AIAnalysis        map[string]any   `json:"ai_analysis"`
	RawAIResponse     string           `json:"raw_ai_response"`
	SystemInfo        SystemInfo       `json:"system_info"`
}
