package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/devlinkhq/devlink/internal/domain/profile"
	"github.com/devlinkhq/devlink/pkg/apperror"
	"github.com/devlinkhq/devlink/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const profileColumns = `p.owner_id, p.company, p.website, p.location, p.status, p.bio,
	p.github_username, p.skills, p.social, p.experience, p.education,
	p.version, p.created_at, p.updated_at, u.name, u.avatar`

func scanProfile(row pgx.Row, l logger.Logger) (*profile.Profile, error) {
	p := &profile.Profile{}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.OwnerID, &p.Company, &p.Website, &p.Location, &p.Status, &p.Bio,
		&p.GithubUsername, &skillsBytes, &socialBytes, &experienceBytes, &educationBytes,
		&p.Version, &p.CreatedAt, &p.UpdatedAt, &p.OwnerName, &p.OwnerAvatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		l.Warn("Failed to unmarshal skills", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		l.Warn("Failed to unmarshal social", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Social = profile.Social{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		l.Warn("Failed to unmarshal experience", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		l.Warn("Failed to unmarshal education", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}
	return p, nil
}

type profileDocJSON struct {
	skills     []byte
	social     []byte
	experience []byte
	education  []byte
}

func marshalProfileDoc(p *profile.Profile) (profileDocJSON, error) {
	var doc profileDocJSON
	var err error

	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []profile.Experience{}
	}
	if p.Education == nil {
		p.Education = []profile.Education{}
	}

	if doc.skills, err = json.Marshal(p.Skills); err != nil {
		return doc, apperror.NewInternal("failed to marshal skills", err)
	}
	if doc.social, err = json.Marshal(p.Social); err != nil {
		return doc, apperror.NewInternal("failed to marshal social", err)
	}
	if doc.experience, err = json.Marshal(p.Experience); err != nil {
		return doc, apperror.NewInternal("failed to marshal experience", err)
	}
	if doc.education, err = json.Marshal(p.Education); err != nil {
		return doc, apperror.NewInternal("failed to marshal education", err)
	}
	return doc, nil
}

func (r *postgresProfileRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.owner_id
		WHERE p.owner_id = $1
	`
	row := r.db.QueryRow(ctx, query, ownerID)
	return scanProfile(row, r.logger)
}

func (r *postgresProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	builder := psqlProfile.Select(profileColumns).
		From("profiles p").
		Join("users u ON u.id = p.owner_id").
		OrderBy("p.created_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list profiles query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows, r.logger)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	doc, err := marshalProfileDoc(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (owner_id, company, website, location, status, bio,
			github_username, skills, social, experience, education, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, $12, $13)
		ON CONFLICT (owner_id) DO NOTHING
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.OwnerID, p.Company, p.Website, p.Location, p.Status, p.Bio,
		p.GithubUsername, doc.skills, doc.social, doc.experience, doc.education,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to insert profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// a concurrent request created the profile between lookup and insert
		return profile.ErrVersionConflict
	}
	p.Version = 1
	return nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	doc, err := marshalProfileDoc(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles SET
			company = $3, website = $4, location = $5, status = $6, bio = $7,
			github_username = $8, skills = $9, social = $10, experience = $11,
			education = $12, version = version + 1, updated_at = $13
		WHERE owner_id = $1 AND version = $2
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.OwnerID, p.Version,
		p.Company, p.Website, p.Location, p.Status, p.Bio,
		p.GithubUsername, doc.skills, doc.social, doc.experience, doc.education,
		p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to update profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrVersionConflict
	}
	p.Version++
	return nil
}

func (r *postgresProfileRepo) DeleteCascade(ctx context.Context, ownerID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin cascade delete", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE owner_id = $1`, ownerID); err != nil {
		return apperror.NewInternal("failed to delete posts for owner", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE owner_id = $1`, ownerID); err != nil {
		return apperror.NewInternal("failed to delete profile for owner", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, ownerID); err != nil {
		return apperror.NewInternal("failed to delete user account", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit cascade delete", err)
	}
	return nil
}
