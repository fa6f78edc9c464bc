package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/validation"
)

type ProfileRepo struct{ DB *sql.DB }

const profileColumns = `id, user_id, name, dob, native_address, current_address, phone_country_code,
	phone_number, whatsapp_number, email, pan, linkedin_url, website_url, occupation,
	occupation_description, support_stage_message, membership_type, mentorship_fields,
	previous_experience, area_of_expertise, available_for_mentorship,
	image_url, image_public_id, image_metadata,
	profile_verified, show_in_mentor_section, is_active, created_at, last_updated`

// mentorVisible is the directory membership predicate.
const mentorVisible = `membership_type = 'Mentor' AND show_in_mentor_section AND profile_verified AND is_active`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*model.Profile, error) {
	p := &model.Profile{}
	var (
		dob                                             sql.NullTime
		nativeAddr, currentAddr, phone, whatsapp, email sql.NullString
		pan, linkedin, website, occDesc, supportMsg     sql.NullString
		prevExp, expertise, imageURL, imagePublicID     sql.NullString
		available                                       sql.NullBool
		imageMeta                                       []byte
	)

	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &dob, &nativeAddr, &currentAddr, &p.PhoneCountryCode,
		&phone, &whatsapp, &email, &pan, &linkedin, &website, &p.Occupation,
		&occDesc, &supportMsg, &p.MembershipType, pq.Array(&p.MentorshipFields),
		&prevExp, &expertise, &available,
		&imageURL, &imagePublicID, &imageMeta,
		&p.ProfileVerified, &p.ShowInMentorSection, &p.IsActive, &p.CreatedAt, &p.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if dob.Valid {
		d := dob.Time
		p.Dob = &d
	}
	p.NativeAddress = nativeAddr.String
	p.CurrentAddress = currentAddr.String
	p.PhoneNumber = phone.String
	p.WhatsappNumber = whatsapp.String
	p.Email = email.String
	p.PAN = pan.String
	p.LinkedinURL = linkedin.String
	p.WebsiteURL = website.String
	p.OccupationDescription = occDesc.String
	p.SupportStageMessage = supportMsg.String
	p.PreviousExperience = prevExp.String
	p.AreaOfExpertise = expertise.String
	if available.Valid {
		v := available.Bool
		p.AvailableForMentorship = &v
	}

	if imageURL.Valid && imagePublicID.Valid && len(imageMeta) > 0 {
		img := &model.StoredImage{URL: imageURL.String, ExternalID: imagePublicID.String}
		if err := json.Unmarshal(imageMeta, &img.Metadata); err != nil {
			return nil, fmt.Errorf("decode image metadata: %w", err)
		}
		p.Image = img
	}
	return p, nil
}

// writableArgs returns the client-editable columns in profileColumns order,
// starting at user_id and ending at image_metadata.
func writableArgs(p *model.Profile) ([]any, error) {
	var dob sql.NullTime
	if p.Dob != nil {
		dob = sql.NullTime{Time: *p.Dob, Valid: true}
	}
	var available sql.NullBool
	if p.AvailableForMentorship != nil {
		available = sql.NullBool{Bool: *p.AvailableForMentorship, Valid: true}
	}

	var (
		imageURL, imagePublicID sql.NullString
		imageMeta               []byte
	)
	if p.Image != nil {
		meta, err := json.Marshal(p.Image.Metadata)
		if err != nil {
			return nil, err
		}
		imageURL = nullString(p.Image.URL)
		imagePublicID = nullString(p.Image.ExternalID)
		imageMeta = meta
	}

	fields := p.MentorshipFields
	if fields == nil {
		fields = []string{}
	}

	return []any{
		p.UserID, p.Name, dob, nullString(p.NativeAddress), nullString(p.CurrentAddress), p.PhoneCountryCode,
		nullString(p.PhoneNumber), nullString(p.WhatsappNumber), nullString(p.Email), nullString(p.PAN),
		nullString(p.LinkedinURL), nullString(p.WebsiteURL), p.Occupation,
		nullString(p.OccupationDescription), nullString(p.SupportStageMessage), p.MembershipType, pq.Array(fields),
		nullString(p.PreviousExperience), nullString(p.AreaOfExpertise), available,
		imageURL, imagePublicID, imageMeta,
	}, nil
}

// checkRecord re-runs the field rules and the image triple invariant before
// anything reaches the database.
func checkRecord(p *model.Profile) error {
	errs := validation.Validate(&p.ProfileFields, time.Now())
	if p.Image != nil && (p.Image.URL == "" || p.Image.ExternalID == "") {
		errs = append(errs, model.FieldError{Field: "image", Message: "image url and public id must be set together"})
	}
	if len(errs) > 0 {
		return &model.ValidationError{Fields: errs}
	}
	return nil
}

func mapWriteError(op string, err error) error {
	switch c := uniqueViolation(err); c {
	case "":
	case "profiles_user_id_key":
		return fmt.Errorf("%s: %w", op, model.ErrProfileExists)
	default:
		return fmt.Errorf("%s: %w (%s)", op, model.ErrStorageConflict, c)
	}
	switch checkViolation(err) {
	case "profiles_image_triple":
		return &model.ValidationError{Fields: []model.FieldError{{Field: "image", Message: "image fields must be set together"}}}
	case "profiles_mentor_fields":
		return &model.ValidationError{Fields: []model.FieldError{{Field: "mentorshipFields", Message: "mentorshipFields (1-5 keywords) are required for Mentor"}}}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := scanProfile(r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if err == sql.ErrNoRows {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return p, nil
}

// GetActiveByID returns an active profile by its id.
func (r *ProfileRepo) GetActiveByID(ctx context.Context, id string) (*model.Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrProfileNotFound
	}
	p, err := scanProfile(r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1 AND is_active`, id))
	if err == sql.ErrNoRows {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return p, nil
}

// Insert creates the first profile for p.UserID and fills in the generated
// id, flags and timestamps.
func (r *ProfileRepo) Insert(ctx context.Context, p *model.Profile) error {
	if err := checkRecord(p); err != nil {
		return err
	}
	args, err := writableArgs(p)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO profiles (id, user_id, name, dob, native_address, current_address, phone_country_code,
			phone_number, whatsapp_number, email, pan, linkedin_url, website_url, occupation,
			occupation_description, support_stage_message, membership_type, mentorship_fields,
			previous_experience, area_of_expertise, available_for_mentorship,
			image_url, image_public_id, image_metadata)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
		RETURNING profile_verified, show_in_mentor_section, is_active, created_at, last_updated`,
		append([]any{id}, args...)...,
	).Scan(&p.ProfileVerified, &p.ShowInMentorSection, &p.IsActive, &p.CreatedAt, &p.LastUpdated)
	if err != nil {
		return mapWriteError("insert profile", err)
	}
	p.ID = id
	return nil
}

// ReplaceByUserID overwrites every client-editable column, image triple
// included, in one statement. Admin-controlled flags are left untouched.
func (r *ProfileRepo) ReplaceByUserID(ctx context.Context, p *model.Profile) error {
	if err := checkRecord(p); err != nil {
		return err
	}
	args, err := writableArgs(p)
	if err != nil {
		return err
	}

	err = r.DB.QueryRowContext(ctx, `
		UPDATE profiles SET
			name=$2, dob=$3, native_address=$4, current_address=$5, phone_country_code=$6,
			phone_number=$7, whatsapp_number=$8, email=$9, pan=$10, linkedin_url=$11, website_url=$12,
			occupation=$13, occupation_description=$14, support_stage_message=$15, membership_type=$16,
			mentorship_fields=$17, previous_experience=$18, area_of_expertise=$19,
			available_for_mentorship=$20, image_url=$21, image_public_id=$22, image_metadata=$23,
			last_updated=NOW()
		WHERE user_id=$1
		RETURNING id, profile_verified, show_in_mentor_section, is_active, created_at, last_updated`,
		args...,
	).Scan(&p.ID, &p.ProfileVerified, &p.ShowInMentorSection, &p.IsActive, &p.CreatedAt, &p.LastUpdated)
	if err == sql.ErrNoRows {
		return model.ErrProfileNotFound
	}
	if err != nil {
		return mapWriteError("replace profile", err)
	}
	return nil
}

// DeleteByUserID hard-deletes the profile and returns the external id of the
// image it referenced, if any.
func (r *ProfileRepo) DeleteByUserID(ctx context.Context, userID string) (string, error) {
	var imageID sql.NullString
	err := r.DB.QueryRowContext(ctx,
		`DELETE FROM profiles WHERE user_id = $1 RETURNING image_public_id`, userID).Scan(&imageID)
	if err == sql.ErrNoRows {
		return "", model.ErrProfileNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete profile: %w", err)
	}
	return imageID.String, nil
}

// SetShowInMentorSection writes the flag. Enabling only matches mentors with
// at least one keyword, so a racing edit cannot leave an ineligible row visible.
func (r *ProfileRepo) SetShowInMentorSection(ctx context.Context, id string, show bool) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE profiles SET show_in_mentor_section = $2, last_updated = NOW()
		WHERE id = $1 AND is_active
		  AND ($2 = FALSE OR (membership_type = 'Mentor' AND cardinality(mentorship_fields) > 0))`,
		id, show)
	if err != nil {
		return err
	}
	return expectOne(res, model.ErrNotEligibleMentor)
}

func (r *ProfileRepo) SetVerified(ctx context.Context, id string, verified bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE profiles SET profile_verified = $2, last_updated = NOW() WHERE id = $1 AND is_active`,
		id, verified)
	if err != nil {
		return err
	}
	return expectOne(res, model.ErrProfileNotFound)
}

func (r *ProfileRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE profiles SET is_active = FALSE, last_updated = NOW() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return err
	}
	return expectOne(res, model.ErrProfileNotFound)
}

// where accumulates positional SQL conditions.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *where) page(p model.Page) (string, []any) {
	n := len(w.args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), append(append([]any{}, w.args...), p.Limit, p.Offset())
}

// List is the admin listing over all profiles.
func (r *ProfileRepo) List(ctx context.Context, f model.ProfileFilter, p model.Page) ([]*model.Profile, int, error) {
	w := &where{}
	switch f.Status {
	case "inactive":
		w.add("NOT is_active")
	case "all":
	default:
		w.add("is_active")
	}
	if f.Search != "" {
		w.add(`(name ILIKE ? OR email ILIKE ? OR phone_number ILIKE ?)`,
			likePattern(f.Search), likePattern(f.Search), likePattern(f.Search))
	}
	if f.Occupation != "" {
		w.add("occupation = ?", f.Occupation)
	}
	if f.MembershipType != "" {
		w.add("membership_type = ?", f.MembershipType)
	}
	if f.ProfileVerified != nil {
		w.add("profile_verified = ?", *f.ProfileVerified)
	}
	if f.ShowInMentorSection != nil {
		w.add("show_in_mentor_section = ?", *f.ShowInMentorSection)
	}
	return r.list(ctx, w, p)
}

// mentorWhere builds the directory predicate plus the caller's filters.
func mentorWhere(f model.MentorFilter) *where {
	w := &where{}
	w.add(mentorVisible)
	if f.Search != "" {
		s := likePattern(f.Search)
		w.add(`(name ILIKE ? OR area_of_expertise ILIKE ? OR occupation_description ILIKE ? OR previous_experience ILIKE ?)`,
			s, s, s, s)
	}
	if len(f.Expertise) > 0 {
		w.add("mentorship_fields && ?", pq.Array(f.Expertise))
	}
	if f.AvailableOnly {
		w.add("available_for_mentorship")
	}
	return w
}

// ListMentors is the public mentor directory query.
func (r *ProfileRepo) ListMentors(ctx context.Context, f model.MentorFilter, p model.Page) ([]*model.Profile, int, error) {
	return r.list(ctx, mentorWhere(f), p)
}

func (r *ProfileRepo) list(ctx context.Context, w *where, p model.Page) ([]*model.Profile, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}

	limit, args := w.page(p)
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles`+w.sql()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	out := []*model.Profile{}
	for rows.Next() {
		prof, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, prof)
	}
	return out, total, rows.Err()
}

// CountAvailableMentors counts visible mentors matching f that are currently
// taking mentees.
func (r *ProfileRepo) CountAvailableMentors(ctx context.Context, f model.MentorFilter) (int, error) {
	w := mentorWhere(f)
	if !f.AvailableOnly {
		w.add("available_for_mentorship")
	}
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`+w.sql(), w.args...).Scan(&n)
	return n, err
}

// GetMentor returns a profile only while it is visible in the directory.
func (r *ProfileRepo) GetMentor(ctx context.Context, id string) (*model.Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrMentorNotFound
	}
	p, err := scanProfile(r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1 AND `+mentorVisible, id))
	if err == sql.ErrNoRows {
		return nil, model.ErrMentorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mentor: %w", err)
	}
	return p, nil
}

// ExpertiseCounts aggregates keywords over visible mentors, most common first.
func (r *ProfileRepo) ExpertiseCounts(ctx context.Context) ([]model.ExpertiseCount, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT kw, COUNT(*) FROM profiles, unnest(mentorship_fields) AS kw
		WHERE `+mentorVisible+`
		GROUP BY kw
		ORDER BY COUNT(*) DESC, kw`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ExpertiseCount{}
	for rows.Next() {
		var c model.ExpertiseCount
		if err := rows.Scan(&c.Expertise, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
