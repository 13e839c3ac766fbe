package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleDocument = `{
  "metadata": {
    "organization": "  Acme Corp ",
    "assessment_title": "Engineering Assessment",
    "client": "Acme Corp",
    "prepared_by": "Example Partners",
    "assessment_date": "2025-06-01",
    "version": "1.0"
  },
  "assessment_overview": {
    "executive_summary": "A summary.",
    "strategic_pillars": ["Pillar one", "  ", null],
    "key_findings": ["Finding one"]
  },
  "benchmarks_reference": {
    "source_documents": [
      {"title": "DORA Metrics", "url": "https://example.com"},
      {"url": "https://missing-title.example.com"}
    ]
  },
  "frameworks": {
    "dora": {
      "metrics": [
        {
          "id": "deployment_frequency",
          "name": "Deployment Frequency",
          "current_value": 2,
          "current_value_display": "2x per month",
          "benchmark_value": 12,
          "performance_tier": "Medium",
          "gap_analysis": "Well below elite cadence.",
          "telemetry": {
            "value": 1.6,
            "source": "CI/CD pipeline",
            "measurement_period": "Q1 2025",
            "variance_from_survey": -20
          }
        },
        {"name": "No id, should be skipped", "current_value": 1}
      ]
    },
    "blueoptima": {"metrics": []},
    "space": {
      "dimensions": [
        {
          "id": "performance",
          "name": "Performance",
          "current_score": 3.1,
          "target_score": 4.5,
          "supporting_signals": ["Signal one"]
        }
      ]
    },
    "samm": {
      "practices": [
        {
          "id": "governance_strategy",
          "name": "Strategy & Metrics",
          "domain": "Governance",
          "current_level": 0.8,
          "target_level": 2.5
        }
      ]
    }
  }
}`

func writeSampleDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assessment.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadNormalizesDocument(t *testing.T) {
	repo := NewAssessmentRepository(writeSampleDocument(t, sampleDocument), zap.NewNop())

	doc, err := repo.Load()
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", doc.Metadata.Organization)
	assert.Equal(t, "Engineering Assessment", doc.Metadata.AssessmentTitle)
	assert.Equal(t, []string{"Pillar one"}, doc.Overview.StrategicPillars)

	require.Len(t, doc.Sources, 1)
	assert.Equal(t, "DORA Metrics", doc.Sources[0].Title)

	require.Len(t, doc.Frameworks.Dora.Metrics, 1)
	metric := doc.Frameworks.Dora.Metrics[0]
	assert.Equal(t, "deployment_frequency", metric.ID)
	assert.Equal(t, "2x per month", metric.CurrentValueDisplay)
	assert.Equal(t, "12", metric.BenchmarkValue)
	require.NotNil(t, metric.Telemetry)
	assert.Equal(t, -20.0, metric.Telemetry.VarianceFromSurvey)

	require.Len(t, doc.Frameworks.Space.Dimensions, 1)
	assert.Equal(t, 3.1, doc.Frameworks.Space.Dimensions[0].CurrentScore)

	require.Len(t, doc.Frameworks.Samm.Practices, 1)
	assert.Equal(t, "Governance", doc.Frameworks.Samm.Practices[0].Domain)
}

func TestLoadMetricNameFallsBackToID(t *testing.T) {
	content := `{"frameworks": {"dora": {"metrics": [{"id": "lead_time", "current_value": 5}]}}}`
	repo := NewAssessmentRepository(writeSampleDocument(t, content), zap.NewNop())

	doc, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, doc.Frameworks.Dora.Metrics, 1)
	assert.Equal(t, "lead_time", doc.Frameworks.Dora.Metrics[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	repo := NewAssessmentRepository(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	_, err := repo.Load()
	assert.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	repo := NewAssessmentRepository(writeSampleDocument(t, "{not json"), zap.NewNop())
	_, err := repo.Load()
	assert.Error(t, err)
}
