package neo4j

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"

	pkgneo4j "github.com/honeycarbs/jobboard/pkg/neo4j"
)

// Ensure JobRepository implements job.Repository
var _ job.Repository = (*JobRepository)(nil)

// JobRepository implements job.Repository with Neo4j
type JobRepository struct {
	client *pkgneo4j.Client
}

// NewJobRepository creates a JobRepository with a Neo4j client
func NewJobRepository(client *pkgneo4j.Client) *JobRepository {
	return &JobRepository{
		client: client,
	}
}

const returnJob = `
		OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
		OPTIONAL MATCH (j)-[r:REQUIRES]->(s:Skill)
		WITH j, c, collect(CASE WHEN s IS NULL THEN null ELSE {label: s.name, value: r.value, pos: r.pos} END) AS skills
		RETURN j, c.name AS company, skills
`

// FindAll loads stored jobs, optionally narrowed to a title substring
func (r *JobRepository) FindAll(ctx context.Context, filter job.Filter) ([]domain.JobRecord, error) {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (j:Job)
		WHERE $title = "" OR toLower(j.title) CONTAINS toLower($title)
	` + returnJob + `
		ORDER BY j.insertedAt ASC
	`

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{"title": strings.TrimSpace(filter.Title)})
		if err != nil {
			return nil, err
		}
		return collectJobs(ctx, result)
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: find jobs: %w: %v", domain.ErrStore, err)
	}

	return out.([]domain.JobRecord), nil
}

// FindByID loads a single job by id
func (r *JobRepository) FindByID(ctx context.Context, id string) (domain.JobRecord, error) {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (j:Job {id: $id})
	` + returnJob

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		return collectJobs(ctx, result)
	})
	if err != nil {
		return domain.JobRecord{}, fmt.Errorf("neo4j: find job %q: %w: %v", id, domain.ErrStore, err)
	}

	jobs := out.([]domain.JobRecord)
	if len(jobs) == 0 {
		return domain.JobRecord{}, fmt.Errorf("neo4j: job %q: %w", id, domain.ErrJobNotFound)
	}
	return jobs[0], nil
}

// Insert merges the job node and links its company and skills
func (r *JobRepository) Insert(ctx context.Context, rec domain.JobRecord) (domain.JobRecord, error) {
	params, err := jobParams(rec)
	if err != nil {
		return domain.JobRecord{}, fmt.Errorf("neo4j: encode job %q: %w: %v", rec.ID, domain.ErrStore, err)
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MERGE (j:Job {id: $job.id})
		ON CREATE SET j.insertedAt = datetime()
		SET j.title = $job.title,
		    j.description = $job.description,
		    j.location = $job.location,
		    j.category = $job.category,
		    j.postedAt = CASE WHEN $job.postedAt IS NULL THEN null ELSE datetime({epochMillis: $job.postedAt}) END,
		    j.tags = $job.tags,
		    j.requirements = $job.requirements,
		    j.responsibilities = $job.responsibilities,
		    j.extra = $job.extra
		WITH j
		OPTIONAL MATCH (j)-[old:POSTED_BY|REQUIRES]->()
		DELETE old
		WITH DISTINCT j
		FOREACH (_ IN CASE WHEN $job.company <> "" THEN [1] ELSE [] END |
			MERGE (c:Company {name: $job.company})
			MERGE (j)-[:POSTED_BY]->(c)
		)
		FOREACH (skill IN $job.skills |
			MERGE (s:Skill {name: skill.label})
			MERGE (j)-[rel:REQUIRES]->(s)
			SET rel.value = skill.value, rel.pos = skill.pos
		)
	`

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{"job": params})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return domain.JobRecord{}, fmt.Errorf("neo4j: insert job %q: %w: %v", rec.ID, domain.ErrStore, err)
	}

	rec.Source = domain.SourcePersistent
	return rec, nil
}

func collectJobs(ctx context.Context, result neo4j.ResultWithContext) ([]domain.JobRecord, error) {
	jobs := make([]domain.JobRecord, 0)
	for result.Next(ctx) {
		record := result.Record()

		jobVal, ok := record.Get("j")
		if !ok {
			continue
		}
		node, ok := jobVal.(neo4j.Node)
		if !ok {
			continue
		}

		var company string
		if v, ok := record.Get("company"); ok {
			company, _ = v.(string)
		}
		var skills []any
		if v, ok := record.Get("skills"); ok {
			skills, _ = v.([]any)
		}

		jobs = append(jobs, recordFromNode(node.Props, company, skills))
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}
