package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Cyros-Sachin/Rescue-app/internal/models"
)

var (
	// ErrUnparseable - в ответе модели не нашлось ни одного декодируемого JSON-объекта
	ErrUnparseable = errors.New("oracle response contains no decodable JSON object")
	// ErrSchemaInvalid - объект декодировался, но значения не входят в закрытые перечисления
	ErrSchemaInvalid = errors.New("oracle response violates classification schema")
)

// fencedBlockRe выделяет содержимое блока ```json ... ```
var fencedBlockRe = regexp.MustCompile("```(?:json)?\\s*(\\{[\\s\\S]*?\\})\\s*```")

// rawClassification - ожидаемая структура внутри сырого текста модели.
// Модель может вернуть одну команду (assignedTeam) или список (assignedTeams).
type rawClassification struct {
	Description   string   `json:"description"`
	DisasterType  string   `json:"disasterType"`
	Severity      string   `json:"severity"`
	AssignedTeam  string   `json:"assignedTeam"`
	AssignedTeams []string `json:"assignedTeams"`
	Reasoning     string   `json:"reasoning"`
}

// Parse превращает недоверенный текст модели в валидированную классификацию.
// Цепочка попыток: весь текст как JSON -> fenced-блок -> первый сбалансированный
// {...} фрагмент. Первый декодировавшийся кандидат проходит строгую проверку
// перечислений; значение вне перечисления - ошибка, а не значение по умолчанию.
func Parse(rawText string) (*models.Classification, error) {
	trimmed := strings.TrimSpace(rawText)
	if trimmed == "" {
		return nil, ErrUnparseable
	}

	for _, candidate := range candidates(trimmed) {
		var raw rawClassification
		if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
			continue
		}
		return validate(&raw)
	}
	return nil, ErrUnparseable
}

// candidates возвращает фрагменты текста в порядке цепочки попыток
func candidates(trimmed string) []string {
	out := []string{trimmed}

	if m := fencedBlockRe.FindStringSubmatch(trimmed); m != nil {
		out = append(out, m[1])
	}

	if span := balancedBraceSpan(trimmed); span != "" {
		out = append(out, span)
	}
	return out
}

// balancedBraceSpan находит первый сбалансированный фрагмент в фигурных скобках,
// игнорируя скобки внутри строковых литералов
func balancedBraceSpan(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}

// validate строго проверяет закрытые перечисления декодированного кандидата
func validate(raw *rawClassification) (*models.Classification, error) {
	disasterType, ok := models.ParseDisasterType(raw.DisasterType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown disaster type %q", ErrSchemaInvalid, raw.DisasterType)
	}

	severity, ok := models.ParseSeverity(raw.Severity)
	if !ok {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrSchemaInvalid, raw.Severity)
	}

	return &models.Classification{
		Description:          raw.Description,
		DisasterType:         disasterType,
		Severity:             severity,
		RecommendedTeamTypes: parseTeams(raw),
		Reasoning:            raw.Reasoning,
	}, nil
}

// parseTeams собирает рекомендованные типы команд из assignedTeam/assignedTeams.
// Поле информационное: неизвестные названия отбрасываются, это не нарушение схемы.
func parseTeams(raw *rawClassification) []models.TeamType {
	names := raw.AssignedTeams
	if len(names) == 0 && raw.AssignedTeam != "" {
		names = []string{raw.AssignedTeam}
	}

	var teams []models.TeamType
	for _, name := range names {
		if tt, ok := models.ParseTeamType(name); ok {
			teams = append(teams, tt)
		}
	}
	return teams
}
