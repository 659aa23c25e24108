package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/skill"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
)

type skillRepositoryImpl struct {
	db *database.DB
}

func NewSkillRepository(db *database.DB) skill.SkillRepository {
	return &skillRepositoryImpl{db: db}
}

// CreateSkill implements skill.SkillRepository.
func (r *skillRepositoryImpl) CreateSkill(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO skills (name, category)
		VALUES ($1, $2)
		RETURNING id, name, category, created_at, updated_at
	`

	var created skill.Skill
	err := q.QueryRow(ctx, query, s.Name, s.Category).Scan(
		&created.ID, &created.Name, &created.Category, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return skill.Skill{}, fmt.Errorf("failed to create skill: %w", err)
	}

	return created, nil
}

// GetSkillByID implements skill.SkillRepository.
func (r *skillRepositoryImpl) GetSkillByID(ctx context.Context, id string) (skill.Skill, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, category, created_at, updated_at FROM skills WHERE id = $1`

	var found skill.Skill
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.Name, &found.Category, &found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return skill.Skill{}, skill.ErrSkillNotFound
		}
		return skill.Skill{}, fmt.Errorf("failed to get skill: %w", err)
	}

	return found, nil
}

// ListSkills implements skill.SkillRepository.
func (r *skillRepositoryImpl) ListSkills(ctx context.Context, category string) ([]skill.Skill, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, category, created_at, updated_at FROM skills`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []skill.Skill
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return skills, nil
}

// CreatePathway implements skill.SkillRepository.
func (r *skillRepositoryImpl) CreatePathway(ctx context.Context, p skill.Pathway) (skill.Pathway, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pathways (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`

	var created skill.Pathway
	err := q.QueryRow(ctx, query, p.Name).Scan(
		&created.ID, &created.Name, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return skill.Pathway{}, fmt.Errorf("failed to create pathway: %w", err)
	}

	return created, nil
}

// GetPathwayByID implements skill.SkillRepository.
func (r *skillRepositoryImpl) GetPathwayByID(ctx context.Context, id string) (skill.Pathway, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM pathways WHERE id = $1`

	var found skill.Pathway
	err := q.QueryRow(ctx, query, id).Scan(&found.ID, &found.Name, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return skill.Pathway{}, skill.ErrPathwayNotFound
		}
		return skill.Pathway{}, fmt.Errorf("failed to get pathway: %w", err)
	}

	return found, nil
}

// GetPathwayByName implements skill.SkillRepository.
func (r *skillRepositoryImpl) GetPathwayByName(ctx context.Context, name string) (skill.Pathway, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM pathways WHERE name = $1`

	var found skill.Pathway
	err := q.QueryRow(ctx, query, name).Scan(&found.ID, &found.Name, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return skill.Pathway{}, skill.ErrPathwayNotFound
		}
		return skill.Pathway{}, fmt.Errorf("failed to get pathway by name: %w", err)
	}

	return found, nil
}

// ListPathways implements skill.SkillRepository.
func (r *skillRepositoryImpl) ListPathways(ctx context.Context) ([]skill.Pathway, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at, updated_at FROM pathways ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pathways: %w", err)
	}
	defer rows.Close()

	var pathways []skill.Pathway
	for rows.Next() {
		var p skill.Pathway
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pathway: %w", err)
		}
		pathways = append(pathways, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pathways, nil
}

// TagSkillToPathway implements skill.SkillRepository.
func (r *skillRepositoryImpl) TagSkillToPathway(ctx context.Context, skillID, pathwayID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pathway_skills (pathway_id, skill_id)
		VALUES ($1, $2)
		ON CONFLICT (pathway_id, skill_id) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, pathwayID, skillID)
	if err != nil {
		return fmt.Errorf("failed to tag skill to pathway: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return skill.ErrSkillAlreadyTagged
	}
	return nil
}

// ListSkillsByPathway implements skill.SkillRepository.
func (r *skillRepositoryImpl) ListSkillsByPathway(ctx context.Context, pathwayID string) ([]skill.Skill, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.name, s.category, s.created_at, s.updated_at
		FROM skills s
		JOIN pathway_skills ps ON ps.skill_id = s.id
		WHERE ps.pathway_id = $1
		ORDER BY s.name ASC
	`

	rows, err := q.Query(ctx, query, pathwayID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pathway skills: %w", err)
	}
	defer rows.Close()

	var skills []skill.Skill
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return skills, nil
}

// UpsertRequirement implements skill.SkillRepository.
func (r *skillRepositoryImpl) UpsertRequirement(ctx context.Context, req skill.BandRequirement) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO band_requirements (band, skill_id, required_level)
		VALUES ($1, $2, $3)
		ON CONFLICT (band, skill_id) DO UPDATE SET required_level = EXCLUDED.required_level
	`

	_, err := q.Exec(ctx, query, req.Band, req.SkillID, req.RequiredLevel)
	if err != nil {
		return fmt.Errorf("failed to upsert band requirement: %w", err)
	}
	return nil
}

// ListRequirementsByBand implements skill.SkillRepository.
func (r *skillRepositoryImpl) ListRequirementsByBand(ctx context.Context, band employee.Band) ([]skill.BandRequirement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT br.band, br.skill_id, br.required_level, s.name
		FROM band_requirements br
		JOIN skills s ON s.id = br.skill_id
		WHERE br.band = $1
		ORDER BY s.name ASC
	`

	rows, err := q.Query(ctx, query, band)
	if err != nil {
		return nil, fmt.Errorf("failed to list band requirements: %w", err)
	}
	defer rows.Close()

	var requirements []skill.BandRequirement
	for rows.Next() {
		var req skill.BandRequirement
		if err := rows.Scan(&req.Band, &req.SkillID, &req.RequiredLevel, &req.SkillName); err != nil {
			return nil, fmt.Errorf("failed to scan band requirement: %w", err)
		}
		requirements = append(requirements, req)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requirements, nil
}
