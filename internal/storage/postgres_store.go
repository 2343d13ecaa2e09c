package storage

import (
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

// PostgresStore is the production RecordStore. Schema lives in
// migrations/001_init.sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// quick ping
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) DB() *sql.DB { return p.db }

const userCols = `id, name, username, password, role, contact_number, email`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Password, &u.Role, &u.ContactNumber, &u.Email)
	return u, err
}

func (p *PostgresStore) ListUsers() ([]models.User, error) {
	rows, err := p.db.Query(`SELECT ` + userCols + ` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetUser(id int64) (models.User, error) {
	u, err := scanUser(p.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	return u, err
}

func (p *PostgresStore) CreateUser(u models.User) (models.User, error) {
	err := p.db.QueryRow(`INSERT INTO users(name, username, password, role, contact_number, email) VALUES($1,$2,$3,$4,$5,$6) RETURNING id`,
		u.Name, u.Username, u.Password, u.Role, u.ContactNumber, u.Email).Scan(&u.ID)
	return u, err
}

func (p *PostgresStore) UpdateUser(u models.User) (models.User, error) {
	res, err := p.db.Exec(`UPDATE users SET name=$1, username=$2, password=$3, role=$4, contact_number=$5, email=$6 WHERE id=$7`,
		u.Name, u.Username, u.Password, u.Role, u.ContactNumber, u.Email, u.ID)
	if err != nil {
		return models.User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (p *PostgresStore) DeleteUser(id int64) error {
	res, err := p.db.Exec(`DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

const driverCols = `id, name, mc_number, truck_type, contact_number, email, join_date, sales_agent_id, percentage`

func scanDriver(row interface{ Scan(...any) error }) (models.Driver, error) {
	var d models.Driver
	var agent sql.NullInt64
	err := row.Scan(&d.ID, &d.Name, &d.MCNumber, &d.TruckType, &d.ContactNumber, &d.Email, &d.JoinDate, &agent, &d.Percentage)
	if agent.Valid {
		d.SalesAgentID = agent.Int64
	}
	return d, err
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func (p *PostgresStore) ListDrivers() ([]models.Driver, error) {
	rows, err := p.db.Query(`SELECT ` + driverCols + ` FROM drivers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetDriver(id int64) (models.Driver, error) {
	d, err := scanDriver(p.db.QueryRow(`SELECT `+driverCols+` FROM drivers WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return models.Driver{}, ErrNotFound
	}
	return d, err
}

func (p *PostgresStore) CreateDriver(d models.Driver) (models.Driver, error) {
	err := p.db.QueryRow(`INSERT INTO drivers(name, mc_number, truck_type, contact_number, email, join_date, sales_agent_id, percentage) VALUES($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
		d.Name, d.MCNumber, d.TruckType, d.ContactNumber, d.Email, d.JoinDate, nullID(d.SalesAgentID), d.Percentage).Scan(&d.ID)
	return d, err
}

func (p *PostgresStore) UpdateDriver(d models.Driver) (models.Driver, error) {
	res, err := p.db.Exec(`UPDATE drivers SET name=$1, mc_number=$2, truck_type=$3, contact_number=$4, email=$5, join_date=$6, sales_agent_id=$7, percentage=$8 WHERE id=$9`,
		d.Name, d.MCNumber, d.TruckType, d.ContactNumber, d.Email, d.JoinDate, nullID(d.SalesAgentID), d.Percentage, d.ID)
	if err != nil {
		return models.Driver{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Driver{}, ErrNotFound
	}
	return d, nil
}

func (p *PostgresStore) DeleteDriver(id int64) error {
	res, err := p.db.Exec(`DELETE FROM drivers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

const loadCols = `id, pickup_time, dropoff_time, load_from, load_to, broker_company, broker_mc, broker_name, load_number, load_amount, miles, load_status, payment_status, driver_id, dispatcher_id, invoice_number, created_at`

func scanLoad(row interface{ Scan(...any) error }) (models.Load, error) {
	var l models.Load
	var invoice sql.NullString
	err := row.Scan(&l.ID, &l.PickupTime, &l.DropoffTime, &l.Origin, &l.Destination,
		&l.BrokerCompany, &l.BrokerMC, &l.BrokerName, &l.LoadNumber, &l.Amount, &l.Miles,
		&l.Status, &l.PaymentStatus, &l.DriverID, &l.DispatcherID, &invoice, &l.CreatedAt)
	l.InvoiceNumber = invoice.String
	return l, err
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (p *PostgresStore) ListLoads() ([]models.Load, error) {
	rows, err := p.db.Query(`SELECT ` + loadCols + ` FROM loads ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Load{}
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetLoad(id int64) (models.Load, error) {
	l, err := scanLoad(p.db.QueryRow(`SELECT `+loadCols+` FROM loads WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return models.Load{}, ErrNotFound
	}
	return l, err
}

func (p *PostgresStore) CreateLoad(l models.Load) (models.Load, error) {
	err := p.db.QueryRow(`INSERT INTO loads(pickup_time, dropoff_time, load_from, load_to, broker_company, broker_mc, broker_name, load_number, load_amount, miles, load_status, payment_status, driver_id, dispatcher_id, invoice_number) VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15) RETURNING id, created_at`,
		l.PickupTime, l.DropoffTime, l.Origin, l.Destination, l.BrokerCompany, l.BrokerMC, l.BrokerName,
		l.LoadNumber, l.Amount, l.Miles, l.Status, l.PaymentStatus, l.DriverID, l.DispatcherID, nullStr(l.InvoiceNumber)).
		Scan(&l.ID, &l.CreatedAt)
	return l, err
}

func (p *PostgresStore) UpdateLoad(l models.Load) (models.Load, error) {
	err := p.db.QueryRow(`UPDATE loads SET pickup_time=$1, dropoff_time=$2, load_from=$3, load_to=$4, broker_company=$5, broker_mc=$6, broker_name=$7, load_number=$8, load_amount=$9, miles=$10, load_status=$11, payment_status=$12, driver_id=$13, dispatcher_id=$14, invoice_number=$15 WHERE id=$16 RETURNING created_at`,
		l.PickupTime, l.DropoffTime, l.Origin, l.Destination, l.BrokerCompany, l.BrokerMC, l.BrokerName,
		l.LoadNumber, l.Amount, l.Miles, l.Status, l.PaymentStatus, l.DriverID, l.DispatcherID, nullStr(l.InvoiceNumber), l.ID).
		Scan(&l.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Load{}, ErrNotFound
	}
	if err != nil {
		return models.Load{}, err
	}
	return l, nil
}

func (p *PostgresStore) DeleteLoad(id int64) error {
	res, err := p.db.Exec(`DELETE FROM loads WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) ListAssignments() ([]models.Assignment, error) {
	rows, err := p.db.Query(`SELECT dispatcher_id, driver_id FROM assignments ORDER BY dispatcher_id, driver_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Assignment{}
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.DispatcherID, &a.DriverID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (p *PostgresStore) CreateAssignment(a models.Assignment) error {
	res, err := p.db.Exec(`INSERT INTO assignments(dispatcher_id, driver_id) VALUES($1,$2) ON CONFLICT DO NOTHING`, a.DispatcherID, a.DriverID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAssignmentExists
	}
	return nil
}

func (p *PostgresStore) DeleteAssignment(a models.Assignment) error {
	res, err := p.db.Exec(`DELETE FROM assignments WHERE dispatcher_id=$1 AND driver_id=$2`, a.DispatcherID, a.DriverID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) DriversForDispatcher(dispatcherID int64) ([]models.Driver, error) {
	rows, err := p.db.Query(`SELECT d.id, d.name, d.mc_number, d.truck_type, d.contact_number, d.email, d.join_date, d.sales_agent_id, d.percentage
		FROM drivers d JOIN assignments a ON a.driver_id = d.id WHERE a.dispatcher_id=$1 ORDER BY d.id`, dispatcherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (p *PostgresStore) DispatchersForDriver(driverID int64) ([]models.User, error) {
	rows, err := p.db.Query(`SELECT u.id, u.name, u.username, u.password, u.role, u.contact_number, u.email
		FROM users u JOIN assignments a ON a.dispatcher_id = u.id WHERE a.driver_id=$1 ORDER BY u.id`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
