package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyros-Sachin/Rescue-app/internal/models"
)

const bareJSON = `{
	"description": "Intense flames engulfing a two-story residential building.",
	"disasterType": "fire",
	"severity": "high",
	"assignedTeam": "Fire",
	"reasoning": "Active structure fire requires fire services."
}`

func TestParse_BareJSON(t *testing.T) {
	classification, err := Parse(bareJSON)

	require.NoError(t, err)
	assert.Equal(t, models.DisasterFire, classification.DisasterType)
	assert.Equal(t, models.SeverityHigh, classification.Severity)
	assert.Equal(t, []models.TeamType{models.TeamFire}, classification.RecommendedTeamTypes)
	assert.Equal(t, "Active structure fire requires fire services.", classification.Reasoning)
}

func TestParse_FencedBlock(t *testing.T) {
	raw := "Here is my analysis of the scene:\n\n```json\n" + bareJSON + "\n```\n\nLet me know if you need anything else."

	classification, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, models.DisasterFire, classification.DisasterType)
	assert.Equal(t, models.SeverityHigh, classification.Severity)
}

func TestParse_FencedBlockWithoutLanguageTag(t *testing.T) {
	raw := "```\n" + bareJSON + "\n```"

	classification, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, models.DisasterFire, classification.DisasterType)
}

func TestParse_EmbeddedInProse(t *testing.T) {
	raw := "Based on the image, the situation is serious. " + bareJSON + " That concludes the assessment."

	classification, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, models.DisasterFire, classification.DisasterType)
	assert.Equal(t, models.SeverityHigh, classification.Severity)
}

func TestParse_RoundTripEquality(t *testing.T) {
	// Один и тот же объект в трех обертках дает одинаковую классификацию
	wrappers := map[string]string{
		"bare":   bareJSON,
		"fenced": "```json\n" + bareJSON + "\n```",
		"prose":  "Analysis: " + bareJSON + " End of analysis.",
	}

	var first *models.Classification
	for name, raw := range wrappers {
		classification, err := Parse(raw)
		require.NoError(t, err, name)
		if first == nil {
			first = classification
			continue
		}
		assert.Equal(t, first, classification, name)
	}
}

func TestParse_TeamListVariant(t *testing.T) {
	raw := `{
		"description": "Collapsed building with people trapped under rubble.",
		"disasterType": "building collapse",
		"severity": "critical",
		"assignedTeams": ["NDRF", "Fire"],
		"reasoning": "Structural rescue plus fire risk."
	}`

	classification, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, models.DisasterCollapse, classification.DisasterType)
	assert.Equal(t, models.SeverityCritical, classification.Severity)
	assert.Equal(t, []models.TeamType{models.TeamNDRF, models.TeamFire}, classification.RecommendedTeamTypes)
}

func TestParse_UnknownTeamNamesDropped(t *testing.T) {
	raw := `{"description": "d", "disasterType": "flood", "severity": "medium", "assignedTeams": ["Coast Guard", "NCC"], "reasoning": "r"}`

	classification, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, []models.TeamType{models.TeamNCC}, classification.RecommendedTeamTypes)
}

func TestParse_InvalidSeverity(t *testing.T) {
	raw := `{"description": "d", "disasterType": "fire", "severity": "catastrophic", "assignedTeam": "Fire", "reasoning": "r"}`

	classification, err := Parse(raw)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaInvalid)
	assert.Nil(t, classification)
}

func TestParse_InvalidDisasterType(t *testing.T) {
	raw := `{"description": "d", "disasterType": "meteor strike", "severity": "high", "assignedTeam": "Fire", "reasoning": "r"}`

	_, err := Parse(raw)

	assert.ErrorIs(t, err, ErrSchemaInvalid)
}

func TestParse_NoJSONAtAll(t *testing.T) {
	_, err := Parse("I am sorry, I cannot analyze this image.")

	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse("   \n  ")

	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestParse_MalformedJSONEverywhere(t *testing.T) {
	_, err := Parse("```json\n{\"disasterType\": \"fire\",\n```")

	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestParse_BracesInsideStrings(t *testing.T) {
	raw := `Note: {"description": "smoke over {old town}", "disasterType": "fire", "severity": "low", "assignedTeam": "Fire", "reasoning": "r"} done`

	classification, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "smoke over {old town}", classification.Description)
}

func TestParse_AliasNormalization(t *testing.T) {
	raw := `{"description": "d", "disasterType": "Medical Emergency", "severity": "HIGH", "assignedTeam": "medical", "reasoning": "r"}`

	classification, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, models.DisasterMedical, classification.DisasterType)
	assert.Equal(t, models.SeverityHigh, classification.Severity)
	assert.Equal(t, []models.TeamType{models.TeamMedical}, classification.RecommendedTeamTypes)
}
