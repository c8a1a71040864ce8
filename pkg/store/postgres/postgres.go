// Package postgres is the production store.Store backend, built on
// database/sql and github.com/lib/pq: a pooled *sql.DB, one *sql.Tx per
// store.Tx, and hand-written SQL rather than an ORM.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/models"
	"github.com/tradecircle/backend/pkg/store"
)

//go:embed schema.sql
var schemaSQL string

// Store is the Postgres-backed store.Store.
type Store struct {
	db *sql.DB
}

// Open connects to dsn, applies schema.sql (idempotent, uses IF NOT
// EXISTS throughout), and returns a ready Store.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("postgres: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Tx runs fn inside a SERIALIZABLE transaction, committing on success and
// rolling back on any error (including panics re-thrown after cleanup).
func (s *Store) Tx(ctx context.Context, fn func(store.Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err = fn(&tx{ctx: ctx, tx: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

type tx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *tx) exec(query string, args ...interface{}) {
	if _, err := t.tx.ExecContext(t.ctx, query, args...); err != nil {
		panic(fmt.Errorf("postgres: exec: %w", err))
	}
}

func (t *tx) queryRow(query string, args ...interface{}) *sql.Row {
	return t.tx.QueryRowContext(t.ctx, query, args...)
}

func (t *tx) query(query string, args ...interface{}) *sql.Rows {
	rows, err := t.tx.QueryContext(t.ctx, query, args...)
	if err != nil {
		panic(fmt.Errorf("postgres: query: %w", err))
	}
	return rows
}

func idBytes(id identity.ID) []byte { return id[:] }

func idFromBytes(b []byte) identity.ID {
	var id identity.ID
	copy(id[:], b)
	return id
}

func (t *tx) GetAccount(id identity.ID) (*models.Account, bool) {
	row := t.queryRow(`SELECT identity, full_name, nickname, email, active_company_id, created_at FROM accounts WHERE identity = $1`, idBytes(id))
	a, ok, err := scanAccount(row)
	if err != nil {
		panic(err)
	}
	return a, ok
}

func scanAccount(row *sql.Row) (*models.Account, bool, error) {
	var a models.Account
	var idb []byte
	var activeCompanyID sql.NullInt64
	if err := row.Scan(&idb, &a.FullName, &a.Nickname, &a.Email, &activeCompanyID, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	a.Identity = idFromBytes(idb)
	if activeCompanyID.Valid {
		v := uint64(activeCompanyID.Int64)
		a.ActiveCompanyID = &v
	}
	return &a, true, nil
}

func (t *tx) PutAccount(a *models.Account) {
	var activeCompanyID interface{}
	if a.ActiveCompanyID != nil {
		activeCompanyID = int64(*a.ActiveCompanyID)
	}
	t.exec(`INSERT INTO accounts (identity, full_name, nickname, email, active_company_id, created_at)
	        VALUES ($1,$2,$3,$4,$5,$6)
	        ON CONFLICT (identity) DO UPDATE SET full_name=$2, nickname=$3, email=$4, active_company_id=$5`,
		idBytes(a.Identity), a.FullName, a.Nickname, a.Email, activeCompanyID, a.CreatedAt)
}

func (t *tx) ListAccountsByActiveCompany(companyID uint64) []*models.Account {
	rows := t.query(`SELECT identity, full_name, nickname, email, active_company_id, created_at FROM accounts WHERE active_company_id = $1`, int64(companyID))
	defer rows.Close()
	var out []*models.Account
	for rows.Next() {
		var a models.Account
		var idb []byte
		var activeCompanyID sql.NullInt64
		if err := rows.Scan(&idb, &a.FullName, &a.Nickname, &a.Email, &activeCompanyID, &a.CreatedAt); err != nil {
			panic(err)
		}
		a.Identity = idFromBytes(idb)
		if activeCompanyID.Valid {
			v := uint64(activeCompanyID.Int64)
			a.ActiveCompanyID = &v
		}
		out = append(out, &a)
	}
	return out
}

func (t *tx) GetCompany(id uint64) (*models.Company, bool) {
	row := t.queryRow(`SELECT id, name, slug, location, bio, kvk_number, is_public, created_at FROM companies WHERE id = $1`, int64(id))
	return scanCompany(row)
}

func (t *tx) GetCompanyBySlug(slug string) (*models.Company, bool) {
	row := t.queryRow(`SELECT id, name, slug, location, bio, kvk_number, is_public, created_at FROM companies WHERE slug = $1`, slug)
	return scanCompany(row)
}

func scanCompany(row *sql.Row) (*models.Company, bool) {
	var c models.Company
	var id int64
	if err := row.Scan(&id, &c.Name, &c.Slug, &c.Location, &c.Bio, &c.KVKNumber, &c.IsPublic, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false
		}
		panic(err)
	}
	c.ID = uint64(id)
	return &c, true
}

func (t *tx) PutCompany(c *models.Company) {
	t.exec(`INSERT INTO companies (id, name, slug, location, bio, kvk_number, is_public, created_at)
	        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	        ON CONFLICT (id) DO UPDATE SET name=$2, slug=$3, location=$4, bio=$5, kvk_number=$6, is_public=$7`,
		int64(c.ID), c.Name, c.Slug, c.Location, c.Bio, c.KVKNumber, c.IsPublic, c.CreatedAt)
}

func (t *tx) DeleteCompany(id uint64) {
	t.exec(`DELETE FROM companies WHERE id = $1`, int64(id))
}

func (t *tx) NextCompanyID() uint64 {
	var id int64
	if err := t.queryRow(`SELECT nextval(pg_get_serial_sequence('companies','id'))`).Scan(&id); err != nil {
		panic(err)
	}
	return uint64(id)
}

func (t *tx) GetCapability(companyID uint64) (*models.Capability, bool) {
	row := t.queryRow(`SELECT company_id, can_install, has_cnc, has_large_format, has_bucket_truck FROM capabilities WHERE company_id = $1`, int64(companyID))
	var c models.Capability
	var id int64
	if err := row.Scan(&id, &c.CanInstall, &c.HasCNC, &c.HasLargeFormat, &c.HasBucketTruck); err != nil {
		if err == sql.ErrNoRows {
			return nil, false
		}
		panic(err)
	}
	c.CompanyID = uint64(id)
	return &c, true
}

func (t *tx) PutCapability(c *models.Capability) {
	t.exec(`INSERT INTO capabilities (company_id, can_install, has_cnc, has_large_format, has_bucket_truck)
	        VALUES ($1,$2,$3,$4,$5)
	        ON CONFLICT (company_id) DO UPDATE SET can_install=$2, has_cnc=$3, has_large_format=$4, has_bucket_truck=$5`,
		int64(c.CompanyID), c.CanInstall, c.HasCNC, c.HasLargeFormat, c.HasBucketTruck)
}

func (t *tx) DeleteCapability(companyID uint64) {
	t.exec(`DELETE FROM capabilities WHERE company_id = $1`, int64(companyID))
}

func (t *tx) GetMembership(id identity.ID, companyID uint64) (*models.Membership, bool) {
	row := t.queryRow(`SELECT id, identity, company_id, role, joined_at FROM memberships WHERE identity = $1 AND company_id = $2`, idBytes(id), int64(companyID))
	return scanMembership(row)
}

func (t *tx) GetMembershipByID(id uint64) (*models.Membership, bool) {
	row := t.queryRow(`SELECT id, identity, company_id, role, joined_at FROM memberships WHERE id = $1`, int64(id))
	return scanMembership(row)
}

func scanMembership(row *sql.Row) (*models.Membership, bool) {
	var m models.Membership
	var id int64
	var idb []byte
	var companyID int64
	var role string
	if err := row.Scan(&id, &idb, &companyID, &role, &m.JoinedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false
		}
		panic(err)
	}
	m.ID = uint64(id)
	m.Identity = idFromBytes(idb)
	m.CompanyID = uint64(companyID)
	m.Role = models.Role(role)
	return &m, true
}

func (t *tx) PutMembership(m *models.Membership) {
	if m.ID == 0 {
		row := t.queryRow(`INSERT INTO memberships (identity, company_id, role, joined_at) VALUES ($1,$2,$3,$4)
		                    ON CONFLICT (identity, company_id) DO UPDATE SET role=$3 RETURNING id`,
			idBytes(m.Identity), int64(m.CompanyID), string(m.Role), m.JoinedAt)
		var id int64
		if err := row.Scan(&id); err != nil {
			panic(err)
		}
		m.ID = uint64(id)
		return
	}
	t.exec(`INSERT INTO memberships (id, identity, company_id, role, joined_at) VALUES ($1,$2,$3,$4,$5)
	        ON CONFLICT (id) DO UPDATE SET role=$4`,
		int64(m.ID), idBytes(m.Identity), int64(m.CompanyID), string(m.Role), m.JoinedAt)
}

func (t *tx) DeleteMembership(id uint64) {
	t.exec(`DELETE FROM memberships WHERE id = $1`, int64(id))
}

func (t *tx) ListMembershipsByCompany(companyID uint64) []*models.Membership {
	rows := t.query(`SELECT id, identity, company_id, role, joined_at FROM memberships WHERE company_id = $1`, int64(companyID))
	defer rows.Close()
	return scanMemberships(rows)
}

func (t *tx) ListMembershipsByIdentity(id identity.ID) []*models.Membership {
	rows := t.query(`SELECT id, identity, company_id, role, joined_at FROM memberships WHERE identity = $1`, idBytes(id))
	defer rows.Close()
	return scanMemberships(rows)
}

func scanMemberships(rows *sql.Rows) []*models.Membership {
	var out []*models.Membership
	for rows.Next() {
		var m models.Membership
		var id, companyID int64
		var idb []byte
		var role string
		if err := rows.Scan(&id, &idb, &companyID, &role, &m.JoinedAt); err != nil {
			panic(err)
		}
		m.ID = uint64(id)
		m.Identity = idFromBytes(idb)
		m.CompanyID = uint64(companyID)
		m.Role = models.Role(role)
		out = append(out, &m)
	}
	return out
}

func (t *tx) NextMembershipID() uint64 {
	var id int64
	if err := t.queryRow(`SELECT nextval(pg_get_serial_sequence('memberships','id'))`).Scan(&id); err != nil {
		panic(err)
	}
	return uint64(id)
}

func (t *tx) GetInviteCode(code string) (*models.InviteCode, bool) {
	row := t.queryRow(`SELECT code, company_id, created_by, max_uses, uses_remaining, created_at FROM invite_codes WHERE code = $1`, code)
	var c models.InviteCode
	var companyID int64
	var createdBy []byte
	if err := row.Scan(&c.Code, &companyID, &createdBy, &c.MaxUses, &c.UsesRemaining, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false
		}
		panic(err)
	}
	c.CompanyID = uint64(companyID)
	c.CreatedBy = idFromBytes(createdBy)
	return &c, true
}

func (t *tx) PutInviteCode(c *models.InviteCode) {
	t.exec(`INSERT INTO invite_codes (code, company_id, created_by, max_uses, uses_remaining, created_at)
	        VALUES ($1,$2,$3,$4,$5,$6)
	        ON CONFLICT (code) DO UPDATE SET uses_remaining=$5`,
		c.Code, int64(c.CompanyID), idBytes(c.CreatedBy), c.MaxUses, c.UsesRemaining, c.CreatedAt)
}

func (t *tx) DeleteInviteCode(code string) {
	t.exec(`DELETE FROM invite_codes WHERE code = $1`, code)
}

func (t *tx) ListInviteCodesByCompany(companyID uint64) []*models.InviteCode {
	rows := t.query(`SELECT code, company_id, created_by, max_uses, uses_remaining, created_at FROM invite_codes WHERE company_id = $1`, int64(companyID))
	defer rows.Close()
	var out []*models.InviteCode
	for rows.Next() {
		var c models.InviteCode
		var companyID int64
		var createdBy []byte
		if err := rows.Scan(&c.Code, &companyID, &createdBy, &c.MaxUses, &c.UsesRemaining, &c.CreatedAt); err != nil {
			panic(err)
		}
		c.CompanyID = uint64(companyID)
		c.CreatedBy = idFromBytes(createdBy)
		out = append(out, &c)
	}
	return out
}

func (t *tx) GetConnection(id uint64) (*models.Connection, bool) {
	row := t.queryRow(`SELECT id, company_a, company_b, status, requested_by, requested_by_company, initial_message, blocking_company_id, created_at, updated_at FROM connections WHERE id = $1`, int64(id))
	return scanConnection(row)
}

func (t *tx) GetConnectionByPair(companyA, companyB uint64) (*models.Connection, bool) {
	a, b := companyA, companyB
	if a > b {
		a, b = b, a
	}
	row := t.queryRow(`SELECT id, company_a, company_b, status, requested_by, requested_by_company, initial_message, blocking_company_id, created_at, updated_at FROM connections WHERE company_a = $1 AND company_b = $2`, int64(a), int64(b))
	return scanConnection(row)
}

func scanConnection(row *sql.Row) (*models.Connection, bool) {
	var c models.Connection
	var id, a, b, requestedByCompany int64
	var requestedBy []byte
	var blocking sql.NullInt64
	if err := row.Scan(&id, &a, &b, &c.Status, &requestedBy, &requestedByCompany, &c.InitialMessage, &blocking, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false
		}
		panic(err)
	}
	c.ID = uint64(id)
	c.CompanyA = uint64(a)
	c.CompanyB = uint64(b)
	c.RequestedBy = idFromBytes(requestedBy)
	c.RequestedByCompany = uint64(requestedByCompany)
	if blocking.Valid {
		v := uint64(blocking.Int64)
		c.BlockingCompanyID = &v
	}
	return &c, true
}

func (t *tx) PutConnection(c *models.Connection) {
	var blocking interface{}
	if c.BlockingCompanyID != nil {
		blocking = int64(*c.BlockingCompanyID)
	}
	if c.ID == 0 {
		row := t.queryRow(`INSERT INTO connections (company_a, company_b, status, requested_by, requested_by_company, initial_message, blocking_company_id, created_at, updated_at)
		                    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`,
			int64(c.CompanyA), int64(c.CompanyB), string(c.Status), idBytes(c.RequestedBy), int64(c.RequestedByCompany), c.InitialMessage, blocking, c.CreatedAt, c.UpdatedAt)
		var id int64
		if err := row.Scan(&id); err != nil {
			panic(err)
		}
		c.ID = uint64(id)
		return
	}
	t.exec(`INSERT INTO connections (id, company_a, company_b, status, requested_by, requested_by_company, initial_message, blocking_company_id, created_at, updated_at)
	        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	        ON CONFLICT (id) DO UPDATE SET status=$4, blocking_company_id=$8, updated_at=$10`,
		int64(c.ID), int64(c.CompanyA), int64(c.CompanyB), string(c.Status), idBytes(c.RequestedBy), int64(c.RequestedByCompany), c.InitialMessage, blocking, c.CreatedAt, c.UpdatedAt)
}

func (t *tx) DeleteConnection(id uint64) {
	t.exec(`DELETE FROM connections WHERE id = $1`, int64(id))
}

func (t *tx) ListConnectionsByCompany(companyID uint64) []*models.Connection {
	rows := t.query(`SELECT id, company_a, company_b, status, requested_by, requested_by_company, initial_message, blocking_company_id, created_at, updated_at FROM connections WHERE company_a = $1 OR company_b = $1`, int64(companyID))
	defer rows.Close()
	var out []*models.Connection
	for rows.Next() {
		var c models.Connection
		var id, a, b, requestedByCompany int64
		var requestedBy []byte
		var blocking sql.NullInt64
		if err := rows.Scan(&id, &a, &b, &c.Status, &requestedBy, &requestedByCompany, &c.InitialMessage, &blocking, &c.CreatedAt, &c.UpdatedAt); err != nil {
			panic(err)
		}
		c.ID = uint64(id)
		c.CompanyA = uint64(a)
		c.CompanyB = uint64(b)
		c.RequestedBy = idFromBytes(requestedBy)
		c.RequestedByCompany = uint64(requestedByCompany)
		if blocking.Valid {
			v := uint64(blocking.Int64)
			c.BlockingCompanyID = &v
		}
		out = append(out, &c)
	}
	return out
}

func (t *tx) NextConnectionID() uint64 {
	var id int64
	if err := t.queryRow(`SELECT nextval(pg_get_serial_sequence('connections','id'))`).Scan(&id); err != nil {
		panic(err)
	}
	return uint64(id)
}

func (t *tx) PutConnectionChat(c *models.ConnectionChat) {
	if c.ID == 0 {
		row := t.queryRow(`INSERT INTO connection_chats (connection_id, sender, text, created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
			int64(c.ConnectionID), idBytes(c.Sender), c.Text, c.CreatedAt)
		var id int64
		if err := row.Scan(&id); err != nil {
			panic(err)
		}
		c.ID = uint64(id)
		return
	}
	t.exec(`INSERT INTO connection_chats (id, connection_id, sender, text, created_at) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING`,
		int64(c.ID), int64(c.ConnectionID), idBytes(c.Sender), c.Text, c.CreatedAt)
}

func (t *tx) ListConnectionChatsByConnection(connectionID uint64) []*models.ConnectionChat {
	rows := t.query(`SELECT id, connection_id, sender, text, created_at FROM connection_chats WHERE connection_id = $1 ORDER BY id`, int64(connectionID))
	defer rows.Close()
	var out []*models.ConnectionChat
	for rows.Next() {
		var c models.ConnectionChat
		var id, connID int64
		var sender []byte
		if err := rows.Scan(&id, &connID, &sender, &c.Text, &c.CreatedAt); err != nil {
			panic(err)
		}
		c.ID = uint64(id)
		c.ConnectionID = uint64(connID)
		c.Sender = idFromBytes(sender)
		out = append(out, &c)
	}
	return out
}

func (t *tx) DeleteConnectionChatsByConnection(connectionID uint64) {
	t.exec(`DELETE FROM connection_chats WHERE connection_id = $1`, int64(connectionID))
}

func (t *tx) NextConnectionChatID() uint64 {
	var id int64
	if err := t.queryRow(`SELECT nextval(pg_get_serial_sequence('connection_chats','id'))`).Scan(&id); err != nil {
		panic(err)
	}
	return uint64(id)
}

func (t *tx) GetProject(id uint64) (*models.Project, bool) {
	row := t.queryRow(`SELECT id, owner_company_id, name, description, created_at FROM projects WHERE id = $1`, int64(id))
	var p models.Project
	var pid, owner int64
	if err := row.Scan(&pid, &owner, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false
		}
		panic(err)
	}
	p.ID = uint64(pid)
	p.OwnerCompanyID = uint64(owner)
	return &p, true
}

func (t *tx) PutProject(p *models.Project) {
	if p.ID == 0 {
		row := t.queryRow(`INSERT INTO projects (owner_company_id, name, description, created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
			int64(p.OwnerCompanyID), p.Name, p.Description, p.CreatedAt)
		var id int64
		if err := row.Scan(&id); err != nil {
			panic(err)
		}
		p.ID = uint64(id)
		return
	}
	t.exec(`INSERT INTO projects (id, owner_company_id, name, description, created_at) VALUES ($1,$2,$3,$4,$5)
	        ON CONFLICT (id) DO UPDATE SET name=$3, description=$4`,
		int64(p.ID), int64(p.OwnerCompanyID), p.Name, p.Description, p.CreatedAt)
}

func (t *tx) DeleteProject(id uint64) {
	t.exec(`DELETE FROM projects WHERE id = $1`, int64(id))
}

func (t *tx) NextProjectID() uint64 {
	var id int64
	if err := t.queryRow(`SELECT nextval(pg_get_serial_sequence('projects','id'))`).Scan(&id); err != nil {
		panic(err)
	}
	return uint64(id)
}

func (t *tx) GetProjectMember(projectID, companyID uint64) (*models.ProjectMember, bool) {
	row := t.queryRow(`SELECT id, project_id, company_id, status, invited_at, updated_at FROM project_members WHERE project_id = $1 AND company_id = $2`, int64(projectID), int64(companyID))
	return scanProjectMember(row)
}

func scanProjectMember(row *sql.Row) (*models.ProjectMember, bool) {
	var m models.ProjectMember
	var id, projectID, companyID int64
	var status string
	if err := row.Scan(&id, &projectID, &companyID, &status, &m.InvitedAt, &m.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false
		}
		panic(err)
	}
	m.ID = uint64(id)
	m.ProjectID = uint64(projectID)
	m.CompanyID = uint64(companyID)
	m.Status = models.ProjectMemberStatus(status)
	return &m, true
}

func (t *tx) PutProjectMember(m *models.ProjectMember) {
	if m.ID == 0 {
		row := t.queryRow(`INSERT INTO project_members (project_id, company_id, status, invited_at, updated_at) VALUES ($1,$2,$3,$4,$5)
		                    ON CONFLICT (project_id, company_id) DO UPDATE SET status=$3, updated_at=$5 RETURNING id`,
			int64(m.ProjectID), int64(m.CompanyID), string(m.Status), m.InvitedAt, m.UpdatedAt)
		var id int64
		if err := row.Scan(&id); err != nil {
			panic(err)
		}
		m.ID = uint64(id)
		return
	}
	t.exec(`INSERT INTO project_members (id, project_id, company_id, status, invited_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6)
	        ON CONFLICT (id) DO UPDATE SET status=$4, updated_at=$6`,
		int64(m.ID), int64(m.ProjectID), int64(m.CompanyID), string(m.Status), m.InvitedAt, m.UpdatedAt)
}

func (t *tx) DeleteProjectMember(id uint64) {
	t.exec(`DELETE FROM project_members WHERE id = $1`, int64(id))
}

func (t *tx) ListProjectMembersByProject(projectID uint64) []*models.ProjectMember {
	rows := t.query(`SELECT id, project_id, company_id, status, invited_at, updated_at FROM project_members WHERE project_id = $1`, int64(projectID))
	defer rows.Close()
	return scanProjectMembers(rows)
}

func (t *tx) ListProjectMembersByCompany(companyID uint64) []*models.ProjectMember {
	rows := t.query(`SELECT id, project_id, company_id, status, invited_at, updated_at FROM project_members WHERE company_id = $1`, int64(companyID))
	defer rows.Close()
	return scanProjectMembers(rows)
}

func scanProjectMembers(rows *sql.Rows) []*models.ProjectMember {
	var out []*models.ProjectMember
	for rows.Next() {
		var m models.ProjectMember
		var id, projectID, companyID int64
		var status string
		if err := rows.Scan(&id, &projectID, &companyID, &status, &m.InvitedAt, &m.UpdatedAt); err != nil {
			panic(err)
		}
		m.ID = uint64(id)
		m.ProjectID = uint64(projectID)
		m.CompanyID = uint64(companyID)
		m.Status = models.ProjectMemberStatus(status)
		out = append(out, &m)
	}
	return out
}

func (t *tx) NextProjectMemberID() uint64 {
	var id int64
	if err := t.queryRow(`SELECT nextval(pg_get_serial_sequence('project_members','id'))`).Scan(&id); err != nil {
		panic(err)
	}
	return uint64(id)
}

func (t *tx) PutProjectChat(c *models.ProjectChat) {
	if c.ID == 0 {
		row := t.queryRow(`INSERT INTO project_chats (project_id, sender, text, created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
			int64(c.ProjectID), idBytes(c.Sender), c.Text, c.CreatedAt)
		var id int64
		if err := row.Scan(&id); err != nil {
			panic(err)
		}
		c.ID = uint64(id)
		return
	}
	t.exec(`INSERT INTO project_chats (id, project_id, sender, text, created_at) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING`,
		int64(c.ID), int64(c.ProjectID), idBytes(c.Sender), c.Text, c.CreatedAt)
}

func (t *tx) ListProjectChatsByProject(projectID uint64) []*models.ProjectChat {
	rows := t.query(`SELECT id, project_id, sender, text, created_at FROM project_chats WHERE project_id = $1 ORDER BY id`, int64(projectID))
	defer rows.Close()
	var out []*models.ProjectChat
	for rows.Next() {
		var c models.ProjectChat
		var id, projectID int64
		var sender []byte
		if err := rows.Scan(&id, &projectID, &sender, &c.Text, &c.CreatedAt); err != nil {
			panic(err)
		}
		c.ID = uint64(id)
		c.ProjectID = uint64(projectID)
		c.Sender = idFromBytes(sender)
		out = append(out, &c)
	}
	return out
}

func (t *tx) DeleteProjectChatsByProject(projectID uint64) {
	t.exec(`DELETE FROM project_chats WHERE project_id = $1`, int64(projectID))
}

func (t *tx) NextProjectChatID() uint64 {
	var id int64
	if err := t.queryRow(`SELECT nextval(pg_get_serial_sequence('project_chats','id'))`).Scan(&id); err != nil {
		panic(err)
	}
	return uint64(id)
}

func (t *tx) GetNotification(id uint64) (*models.Notification, bool) {
	row := t.queryRow(`SELECT id, recipient_identity, company_id, notification_type, title, body, is_read, created_at FROM notifications WHERE id = $1`, int64(id))
	var n models.Notification
	var nid, companyID int64
	var recipient []byte
	var typ string
	if err := row.Scan(&nid, &recipient, &companyID, &typ, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false
		}
		panic(err)
	}
	n.ID = uint64(nid)
	n.RecipientIdentity = idFromBytes(recipient)
	n.CompanyID = uint64(companyID)
	n.Type = models.NotificationType(typ)
	return &n, true
}

func (t *tx) PutNotification(n *models.Notification) {
	if n.ID == 0 {
		row := t.queryRow(`INSERT INTO notifications (recipient_identity, company_id, notification_type, title, body, is_read, created_at)
		                    VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
			idBytes(n.RecipientIdentity), int64(n.CompanyID), string(n.Type), n.Title, n.Body, n.IsRead, n.CreatedAt)
		var id int64
		if err := row.Scan(&id); err != nil {
			panic(err)
		}
		n.ID = uint64(id)
		return
	}
	t.exec(`INSERT INTO notifications (id, recipient_identity, company_id, notification_type, title, body, is_read, created_at)
	        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	        ON CONFLICT (id) DO UPDATE SET is_read=$7`,
		int64(n.ID), idBytes(n.RecipientIdentity), int64(n.CompanyID), string(n.Type), n.Title, n.Body, n.IsRead, n.CreatedAt)
}

func (t *tx) DeleteNotification(id uint64) {
	t.exec(`DELETE FROM notifications WHERE id = $1`, int64(id))
}

func (t *tx) ListNotificationsByRecipientCompany(recipient identity.ID, companyID uint64) []*models.Notification {
	rows := t.query(`SELECT id, recipient_identity, company_id, notification_type, title, body, is_read, created_at FROM notifications WHERE recipient_identity = $1 AND company_id = $2 ORDER BY id`, idBytes(recipient), int64(companyID))
	defer rows.Close()
	var out []*models.Notification
	for rows.Next() {
		var n models.Notification
		var nid, companyID int64
		var rid []byte
		var typ string
		if err := rows.Scan(&nid, &rid, &companyID, &typ, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			panic(err)
		}
		n.ID = uint64(nid)
		n.RecipientIdentity = idFromBytes(rid)
		n.CompanyID = uint64(companyID)
		n.Type = models.NotificationType(typ)
		out = append(out, &n)
	}
	return out
}

func (t *tx) ListNotificationsByCompany(companyID uint64) []*models.Notification {
	rows := t.query(`SELECT id, recipient_identity, company_id, notification_type, title, body, is_read, created_at FROM notifications WHERE company_id = $1 ORDER BY id`, int64(companyID))
	defer rows.Close()
	var out []*models.Notification
	for rows.Next() {
		var n models.Notification
		var nid, cid int64
		var rid []byte
		var typ string
		if err := rows.Scan(&nid, &rid, &cid, &typ, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			panic(err)
		}
		n.ID = uint64(nid)
		n.RecipientIdentity = idFromBytes(rid)
		n.CompanyID = uint64(cid)
		n.Type = models.NotificationType(typ)
		out = append(out, &n)
	}
	return out
}

func (t *tx) NextNotificationID() uint64 {
	var id int64
	if err := t.queryRow(`SELECT nextval(pg_get_serial_sequence('notifications','id'))`).Scan(&id); err != nil {
		panic(err)
	}
	return uint64(id)
}
