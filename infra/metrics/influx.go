package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/ambuflow/crewmatch/core/metrics"
	"github.com/ambuflow/crewmatch/infra/logger"
)

// InfluxSink writes recommendation events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRecommendations writes each ranked candidate as a line protocol event.
func (s *InfluxSink) RecordRecommendations(records []coremetrics.RecommendationRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range records {
		p := write.NewPointWithMeasurement("recommendation_event").
			AddTag("candidate_id", r.CandidateID).
			AddTag("service_type", r.ServiceType.String()).
			AddTag("top_choice", strconv.FormatBool(r.TopChoice)).
			AddTag("route_unknown", strconv.FormatBool(r.RouteUnknown)).
			AddTag("evaluation_id", r.EvaluationID).
			AddField("composite_score", round3(r.CompositeScore)).
			AddField("certification_score", round3(r.CertificationScore)).
			AddField("availability_score", round3(r.AvailabilityScore)).
			AddField("travel_score", round3(r.TravelScore)).
			SetTime(r.EvaluatedAt)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordEvaluationSummary persists the per-evaluation aggregate.
func (s *InfluxSink) RecordEvaluationSummary(sum coremetrics.EvaluationSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("evaluation_summary").
		AddTag("evaluation_id", sum.EvaluationID).
		AddTag("service_type", sum.ServiceType.String()).
		AddField("roster_size", sum.RosterSize).
		AddField("alert_count", sum.AlertCount).
		AddField("mean_score", round3(sum.MeanScore)).
		AddField("stddev_score", round3(sum.StdDevScore)).
		AddField("duration_ms", sum.Duration.Milliseconds()).
		SetTime(sum.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordAlerts persists capability alerts.
func (s *InfluxSink) RecordAlerts(records []coremetrics.AlertRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range records {
		p := write.NewPointWithMeasurement("capability_alert").
			AddTag("employee_id", r.Alert.EmployeeID).
			AddTag("type", r.Alert.Type.String()).
			AddTag("severity", r.Alert.Severity.String()).
			AddTag("certification", r.Alert.CertificationName).
			AddField("days_remaining", r.Alert.DaysRemaining).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close shuts down the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
