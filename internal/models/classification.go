package models

import "strings"

// DisasterType - закрытое перечисление видов бедствий
type DisasterType string

const (
	DisasterFlood      DisasterType = "flood"
	DisasterFire       DisasterType = "fire"
	DisasterEarthquake DisasterType = "earthquake"
	DisasterCollapse   DisasterType = "collapse"
	DisasterMedical    DisasterType = "medical"
	DisasterAccident   DisasterType = "accident"
	DisasterLandslide  DisasterType = "landslide"
	DisasterOther      DisasterType = "other"
)

// Severity - закрытое перечисление уровней серьезности
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// TeamType - тип спасательной команды
type TeamType string

const (
	TeamNDRF    TeamType = "NDRF"
	TeamNCC     TeamType = "NCC"
	TeamFire    TeamType = "Fire"
	TeamPolice  TeamType = "Police"
	TeamMedical TeamType = "Medical"
	TeamOther   TeamType = "Other"
)

// Classification - валидированный результат анализа сцены моделью.
// Неизменяем после создания парсером.
type Classification struct {
	Description          string       `json:"description"`
	DisasterType         DisasterType `json:"disaster_type"`
	Severity             Severity     `json:"severity"`
	RecommendedTeamTypes []TeamType   `json:"recommended_team_types,omitempty"`
	Reasoning            string       `json:"reasoning"`
}

// disasterAliases - формулировки типов, которые модель использует в своем же промпте
// ("building collapse", "medical emergency"), приводим к каноническим значениям
var disasterAliases = map[string]DisasterType{
	"building collapse": DisasterCollapse,
	"medical emergency": DisasterMedical,
}

// ParseDisasterType приводит строку к члену перечисления DisasterType.
// Возвращает false, если значение не входит в перечисление.
func ParseDisasterType(s string) (DisasterType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if dt, ok := disasterAliases[normalized]; ok {
		return dt, true
	}
	switch dt := DisasterType(normalized); dt {
	case DisasterFlood, DisasterFire, DisasterEarthquake, DisasterCollapse,
		DisasterMedical, DisasterAccident, DisasterLandslide, DisasterOther:
		return dt, true
	}
	return "", false
}

// ParseSeverity приводит строку к члену перечисления Severity.
// Возвращает false, если значение не входит в перечисление.
func ParseSeverity(s string) (Severity, bool) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return sev, true
	}
	return "", false
}

// ParseTeamType приводит строку к члену перечисления TeamType.
// Возвращает false, если значение не входит в перечисление.
func ParseTeamType(s string) (TeamType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, tt := range []TeamType{TeamNDRF, TeamNCC, TeamFire, TeamPolice, TeamMedical, TeamOther} {
		if normalized == strings.ToLower(string(tt)) {
			return tt, true
		}
	}
	return "", false
}
