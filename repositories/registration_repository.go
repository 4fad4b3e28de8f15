package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/athlos-fc/academy-system/models"
)

var ErrRegistrationNotFound = errors.New("registration not found")

type RegistrationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, reg *models.Registration) error
	FindByID(ctx context.Context, exec SQLExecutor, id int) (*models.Registration, error)
	List(ctx context.Context, statusFilter *models.RegistrationStatus) ([]*models.RegistrationSummary, error)
	// UpdateStatusIfPending flips the status only when the row is still
	// pending. Zero affected rows means the registration was already
	// approved (or deleted) by a concurrent request.
	UpdateStatusIfPending(ctx context.Context, exec SQLExecutor, id int, status models.RegistrationStatus) error
	Delete(ctx context.Context, id int) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const registrationColumns = `
	id, email, player_name, phone, emergency_contact,
	dob, gender, parent_name, relationship, parent_contact, occupation,
	position, purpose, years_exp, previous_club, injuries,
	consent_participate, consent_liability, consent_media, consent_aiff,
	program, payment_method, upi_id,
	photo_filename, photo_content_type, photo_size, photo_key, photo_uploaded_at,
	id_doc_filename, id_doc_content_type, id_doc_size, id_doc_key, id_doc_uploaded_at,
	birth_proof_filename, birth_proof_content_type, birth_proof_size, birth_proof_key, birth_proof_uploaded_at,
	payment_receipt_filename, payment_receipt_content_type, payment_receipt_size, payment_receipt_key, payment_receipt_uploaded_at,
	status, created_at`

func (r *postgresRegistrationRepository) Create(ctx context.Context, exec SQLExecutor, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (
			email, player_name, phone, emergency_contact,
			dob, gender, parent_name, relationship, parent_contact, occupation,
			position, purpose, years_exp, previous_club, injuries,
			consent_participate, consent_liability, consent_media, consent_aiff,
			program, payment_method, upi_id,
			photo_filename, photo_content_type, photo_size, photo_key, photo_uploaded_at,
			id_doc_filename, id_doc_content_type, id_doc_size, id_doc_key, id_doc_uploaded_at,
			birth_proof_filename, birth_proof_content_type, birth_proof_size, birth_proof_key, birth_proof_uploaded_at,
			payment_receipt_filename, payment_receipt_content_type, payment_receipt_size, payment_receipt_key, payment_receipt_uploaded_at,
			status
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15,
			$16, $17, $18, $19,
			$20, $21, $22,
			$23, $24, $25, $26, $27,
			$28, $29, $30, $31, $32,
			$33, $34, $35, $36, $37,
			$38, $39, $40, $41, $42,
			$43
		)
		RETURNING id, created_at`

	args := []interface{}{
		reg.Email, reg.PlayerName, reg.Phone, reg.EmergencyContact,
		reg.DOB, reg.Gender, reg.ParentName, reg.Relationship, reg.ParentContact, reg.Occupation,
		reg.Position, reg.Purpose, reg.YearsExp, reg.PreviousClub, reg.Injuries,
		reg.ConsentParticipate, reg.ConsentLiability, reg.ConsentMedia, reg.ConsentAIFF,
		reg.Program, reg.PaymentMethod, reg.UpiID,
	}
	args = append(args, fileRefArgs(reg.Photo)...)
	args = append(args, fileRefArgs(reg.IDDoc)...)
	args = append(args, fileRefArgs(reg.BirthProof)...)
	args = append(args, fileRefArgs(reg.PaymentReceipt)...)
	args = append(args, reg.Status)

	err := r.getExecutor(exec).QueryRowContext(ctx, query, args...).Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *postgresRegistrationRepository) FindByID(ctx context.Context, exec SQLExecutor, id int) (*models.Registration, error) {
	query := fmt.Sprintf(`SELECT %s FROM registrations WHERE id = $1`, registrationColumns)

	reg := &models.Registration{}
	var photo, idDoc, birthProof, paymentReceipt fileRefRow

	row := r.getExecutor(exec).QueryRowContext(ctx, query, id)
	err := row.Scan(
		&reg.ID, &reg.Email, &reg.PlayerName, &reg.Phone, &reg.EmergencyContact,
		&reg.DOB, &reg.Gender, &reg.ParentName, &reg.Relationship, &reg.ParentContact, &reg.Occupation,
		&reg.Position, &reg.Purpose, &reg.YearsExp, &reg.PreviousClub, &reg.Injuries,
		&reg.ConsentParticipate, &reg.ConsentLiability, &reg.ConsentMedia, &reg.ConsentAIFF,
		&reg.Program, &reg.PaymentMethod, &reg.UpiID,
		&photo.filename, &photo.contentType, &photo.size, &photo.key, &photo.uploadedAt,
		&idDoc.filename, &idDoc.contentType, &idDoc.size, &idDoc.key, &idDoc.uploadedAt,
		&birthProof.filename, &birthProof.contentType, &birthProof.size, &birthProof.key, &birthProof.uploadedAt,
		&paymentReceipt.filename, &paymentReceipt.contentType, &paymentReceipt.size, &paymentReceipt.key, &paymentReceipt.uploadedAt,
		&reg.Status, &reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}

	reg.Photo = photo.toFileRef()
	reg.IDDoc = idDoc.toFileRef()
	reg.BirthProof = birthProof.toFileRef()
	reg.PaymentReceipt = paymentReceipt.toFileRef()
	return reg, nil
}

func (r *postgresRegistrationRepository) List(ctx context.Context, statusFilter *models.RegistrationStatus) ([]*models.RegistrationSummary, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, player_name, email, phone, program, status, created_at FROM registrations`)

	args := make([]interface{}, 0, 1)
	if statusFilter != nil {
		queryBuilder.WriteString(" WHERE status = $1")
		args = append(args, *statusFilter)
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	summaries := make([]*models.RegistrationSummary, 0)
	for rows.Next() {
		var s models.RegistrationSummary
		if err := rows.Scan(&s.ID, &s.PlayerName, &s.Email, &s.Phone, &s.Program, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		summaries = append(summaries, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return summaries, nil
}

func (r *postgresRegistrationRepository) UpdateStatusIfPending(ctx context.Context, exec SQLExecutor, id int, status models.RegistrationStatus) error {
	query := `UPDATE registrations SET status = $1 WHERE id = $2 AND status = 'pending'`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update registration status: %w", err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM registrations WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

// fileRefRow holds one nullable file-reference column group.
type fileRefRow struct {
	filename    sql.NullString
	contentType sql.NullString
	size        sql.NullInt64
	key         sql.NullString
	uploadedAt  sql.NullTime
}

func (f fileRefRow) toFileRef() *models.FileRef {
	if !f.key.Valid || !f.filename.Valid {
		return nil
	}
	ref := &models.FileRef{
		Filename: f.filename.String,
		Key:      f.key.String,
	}
	if f.contentType.Valid {
		ref.ContentType = f.contentType.String
	}
	if f.size.Valid {
		ref.Size = f.size.Int64
	}
	if f.uploadedAt.Valid {
		ref.UploadedAt = f.uploadedAt.Time
	}
	return ref
}

func fileRefArgs(ref *models.FileRef) []interface{} {
	if ref == nil {
		return []interface{}{nil, nil, nil, nil, nil}
	}
	return []interface{}{ref.Filename, ref.ContentType, ref.Size, ref.Key, ref.UploadedAt}
}
