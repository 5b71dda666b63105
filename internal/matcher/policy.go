package matcher

import "github.com/Cyros-Sachin/Rescue-app/internal/models"

// dispatchPolicy - фиксированная таблица соответствия вида бедствия
// и типов команд для первой (ограниченной) фазы подбора
var dispatchPolicy = map[models.DisasterType][]models.TeamType{
	models.DisasterFire:       {models.TeamFire},
	models.DisasterCollapse:   {models.TeamNDRF, models.TeamFire},
	models.DisasterMedical:    {models.TeamMedical},
	models.DisasterFlood:      {models.TeamNDRF, models.TeamNCC},
	models.DisasterEarthquake: {models.TeamNDRF},
	models.DisasterAccident:   {models.TeamPolice, models.TeamMedical},
	models.DisasterLandslide:  {models.TeamNDRF, models.TeamNCC},
}

// TeamsFor возвращает рекомендованные типы команд для вида бедствия.
// Для неизвестного или "other" вида - {Other}.
func TeamsFor(disasterType models.DisasterType) []models.TeamType {
	if teams, ok := dispatchPolicy[disasterType]; ok {
		// Копия, чтобы вызывающий не мог изменить таблицу политик
		out := make([]models.TeamType, len(teams))
		copy(out, teams)
		return out
	}
	return []models.TeamType{models.TeamOther}
}
