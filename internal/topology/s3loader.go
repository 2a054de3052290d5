package topology

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Source reads the topology artifacts from an S3 bucket/prefix instead of
// the local filesystem, for deployments where the topology-builder scripts
// (§1, out of scope) publish directly to object storage rather than baking
// the artifacts into the service image. Selected via TOPOLOGY_SOURCE=s3://bucket/prefix.
type S3Source struct {
	Bucket string
	Prefix string
	client *s3.S3
}

// NewS3Source creates an S3-backed topology source using the default AWS
// session (credentials/region resolved the usual SDK way: env vars, shared
// config, instance role).
func NewS3Source(bucket, prefix string) (*S3Source, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("topology: creating aws session: %w", err)
	}
	return &S3Source{Bucket: bucket, Prefix: prefix, client: s3.New(sess)}, nil
}

func (s *S3Source) key(name string) string {
	if s.Prefix == "" {
		return name
	}
	return s.Prefix + "/" + name
}

func (s *S3Source) getObject(ctx context.Context, name string) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, fmt.Errorf("topology: fetching s3://%s/%s: %w", s.Bucket, s.key(name), err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Source) ReadLines(ctx context.Context) ([]Line, error) {
	raw, err := s.getObject(ctx, "lines.json")
	if err != nil {
		return nil, err
	}
	var byID map[string][]string
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, fmt.Errorf("topology: parsing lines.json: %w", err)
	}
	lines := make([]Line, 0, len(byID))
	for id, stations := range byID {
		lines = append(lines, Line{ID: id, Stations: stations})
	}
	return lines, nil
}

func (s *S3Source) ReadStations(ctx context.Context) ([]Station, error) {
	raw, err := s.getObject(ctx, "stations.json")
	if err != nil {
		return nil, err
	}
	var byID map[string]stationJSON
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, fmt.Errorf("topology: parsing stations.json: %w", err)
	}
	stations := make([]Station, 0, len(byID))
	for id, st := range byID {
		stations = append(stations, Station{
			ID:        id,
			Name:      st.Name,
			Latitude:  st.Coordinates.Latitude,
			Longitude: st.Coordinates.Longitude,
			Lines:     st.Lines,
		})
	}
	return stations, nil
}

func (s *S3Source) ReadSynonyms(ctx context.Context) (map[string][]string, error) {
	raw, err := s.getObject(ctx, "synonyms.json")
	if err != nil {
		return map[string][]string{}, nil
	}
	var out map[string][]string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("topology: parsing synonyms.json: %w", err)
	}
	return out, nil
}
