package db

const schemaSqlite = `
CREATE TABLE IF NOT EXISTS servers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	environment TEXT,
	primary_hostname TEXT,
	standby_hostname TEXT,
	psu_version TEXT,
	email_sent TEXT,
	alignment TEXT,
	ggs_version TEXT,
	primary_contact TEXT,
	responsible_team TEXT,
	system_product TEXT,
	application_day TEXT,
	start_time TEXT,
	end_time TEXT,
	observation TEXT,
	total_servers INTEGER DEFAULT 1,
	has_standby INTEGER DEFAULT 0,
	has_ggs INTEGER DEFAULT 0
);
CREATE TABLE IF NOT EXISTS cmdb_databases (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	environment TEXT,
	name TEXT,
	contingency_name TEXT,
	db_type TEXT,
	db_version TEXT,
	db_version_detail TEXT,
	status TEXT,
	application_day TEXT,
	week_month TEXT,
	start_time TEXT,
	end_time TEXT,
	system TEXT,
	system_product TEXT,
	type TEXT,
	os TEXT,
	primary_contact TEXT,
	function TEXT,
	description TEXT,
	os_type TEXT,
	responsible_team TEXT,
	manager TEXT,
	team_email TEXT,
	validation_contact TEXT,
	ip_address TEXT
);
CREATE TABLE IF NOT EXISTS gmuds (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	year INTEGER,
	month INTEGER,
	client TEXT,
	db_type TEXT,
	environment TEXT,
	status TEXT,
	day_of_week TEXT,
	start_date TEXT,
	end_date TEXT,
	change_number TEXT,
	title TEXT,
	assigned_to TEXT,
	observation TEXT,
	vulnerability TEXT,
	opened_by TEXT,
	vulnerability_before TEXT,
	vulnerability_after TEXT,
	closing_code TEXT,
	needs_replan TEXT,
	new_start_date TEXT,
	new_end_date TEXT,
	new_gmud TEXT
);
CREATE TABLE IF NOT EXISTS planning (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hostname TEXT,
	contingency_name TEXT,
	application_day TEXT,
	week_month TEXT,
	start_time TEXT,
	end_time TEXT,
	primary_contact TEXT,
	db_version TEXT,
	bank_version TEXT,
	system TEXT,
	system_product TEXT,
	os TEXT,
	function TEXT,
	description TEXT,
	responsible_team TEXT,
	validation_contact TEXT
);
CREATE TABLE IF NOT EXISTS pagonxt_databases (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	environment TEXT,
	name TEXT,
	contingent TEXT,
	psu_version TEXT,
	contact TEXT,
	zone TEXT,
	product TEXT,
	description TEXT,
	channel TEXT,
	service TEXT,
	observation TEXT,
	ip TEXT,
	instance TEXT,
	status TEXT,
	os TEXT
);
CREATE TABLE IF NOT EXISTS cmdb_full (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	client TEXT,
	hostname TEXT,
	contingency TEXT,
	db_type TEXT,
	db_version TEXT,
	status TEXT,
	server_type TEXT,
	environment TEXT,
	os TEXT,
	responsible_team TEXT,
	manager TEXT,
	primary_contact TEXT,
	system_product TEXT,
	function TEXT,
	description TEXT,
	validation_contact TEXT,
	team_email TEXT,
	shutdown_procedure TEXT,
	affinity TEXT,
	week_month TEXT,
	application_day TEXT,
	start_time TEXT,
	end_time TEXT,
	importance_level TEXT,
	criticality TEXT,
	scope_pci TEXT,
	scope_sox TEXT,
	scope_pagonxt TEXT,
	ip_service TEXT,
	ip_backup TEXT,
	ip_branca TEXT,
	zone TEXT,
	country TEXT,
	source_sheet TEXT
);
CREATE TABLE IF NOT EXISTS vulnerabilities (
	qid INTEGER PRIMARY KEY,
	title TEXT,
	severity TEXT,
	threat TEXT,
	solution TEXT,
	category TEXT
);
CREATE TABLE IF NOT EXISTS vulnerability_detections (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	qid INTEGER REFERENCES vulnerabilities(qid),
	asset_name TEXT,
	asset_ip TEXT,
	environment TEXT,
	os TEXT,
	os_version TEXT,
	status TEXT,
	first_detected TEXT,
	last_detected TEXT,
	detection_age INTEGER,
	results TEXT,
	overdue TEXT,
	source TEXT
);
CREATE TABLE IF NOT EXISTS import_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	imported_at TEXT,
	source_file TEXT,
	sheets_imported TEXT,
	total_records INTEGER,
	status TEXT,
	message TEXT
);
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	display_name TEXT,
	role TEXT DEFAULT 'viewer',
	is_active INTEGER DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_servers_env ON servers(environment);
CREATE INDEX IF NOT EXISTS idx_gmuds_status ON gmuds(status);
CREATE INDEX IF NOT EXISTS idx_gmuds_month ON gmuds(year, month);
CREATE INDEX IF NOT EXISTS idx_cmdb_env ON cmdb_databases(environment);
CREATE INDEX IF NOT EXISTS idx_cmdb_full_client ON cmdb_full(client);
CREATE INDEX IF NOT EXISTS idx_cmdb_full_host ON cmdb_full(hostname);
CREATE INDEX IF NOT EXISTS idx_detections_qid ON vulnerability_detections(qid);
CREATE INDEX IF NOT EXISTS idx_detections_asset ON vulnerability_detections(asset_name);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS servers (
	id BIGSERIAL PRIMARY KEY,
	environment TEXT,
	primary_hostname TEXT,
	standby_hostname TEXT,
	psu_version TEXT,
	email_sent TEXT,
	alignment TEXT,
	ggs_version TEXT,
	primary_contact TEXT,
	responsible_team TEXT,
	system_product TEXT,
	application_day TEXT,
	start_time TEXT,
	end_time TEXT,
	observation TEXT,
	total_servers INTEGER DEFAULT 1,
	has_standby INTEGER DEFAULT 0,
	has_ggs INTEGER DEFAULT 0
);
CREATE TABLE IF NOT EXISTS cmdb_databases (
	id BIGSERIAL PRIMARY KEY,
	environment TEXT,
	name TEXT,
	contingency_name TEXT,
	db_type TEXT,
	db_version TEXT,
	db_version_detail TEXT,
	status TEXT,
	application_day TEXT,
	week_month TEXT,
	start_time TEXT,
	end_time TEXT,
	system TEXT,
	system_product TEXT,
	type TEXT,
	os TEXT,
	primary_contact TEXT,
	function TEXT,
	description TEXT,
	os_type TEXT,
	responsible_team TEXT,
	manager TEXT,
	team_email TEXT,
	validation_contact TEXT,
	ip_address TEXT
);
CREATE TABLE IF NOT EXISTS gmuds (
	id BIGSERIAL PRIMARY KEY,
	year INTEGER,
	month INTEGER,
	client TEXT,
	db_type TEXT,
	environment TEXT,
	status TEXT,
	day_of_week TEXT,
	start_date TEXT,
	end_date TEXT,
	change_number TEXT,
	title TEXT,
	assigned_to TEXT,
	observation TEXT,
	vulnerability TEXT,
	opened_by TEXT,
	vulnerability_before TEXT,
	vulnerability_after TEXT,
	closing_code TEXT,
	needs_replan TEXT,
	new_start_date TEXT,
	new_end_date TEXT,
	new_gmud TEXT
);
CREATE TABLE IF NOT EXISTS planning (
	id BIGSERIAL PRIMARY KEY,
	hostname TEXT,
	contingency_name TEXT,
	application_day TEXT,
	week_month TEXT,
	start_time TEXT,
	end_time TEXT,
	primary_contact TEXT,
	db_version TEXT,
	bank_version TEXT,
	system TEXT,
	system_product TEXT,
	os TEXT,
	function TEXT,
	description TEXT,
	responsible_team TEXT,
	validation_contact TEXT
);
CREATE TABLE IF NOT EXISTS pagonxt_databases (
	id BIGSERIAL PRIMARY KEY,
	environment TEXT,
	name TEXT,
	contingent TEXT,
	psu_version TEXT,
	contact TEXT,
	zone TEXT,
	product TEXT,
	description TEXT,
	channel TEXT,
	service TEXT,
	observation TEXT,
	ip TEXT,
	instance TEXT,
	status TEXT,
	os TEXT
);
CREATE TABLE IF NOT EXISTS cmdb_full (
	id BIGSERIAL PRIMARY KEY,
	client TEXT,
	hostname TEXT,
	contingency TEXT,
	db_type TEXT,
	db_version TEXT,
	status TEXT,
	server_type TEXT,
	environment TEXT,
	os TEXT,
	responsible_team TEXT,
	manager TEXT,
	primary_contact TEXT,
	system_product TEXT,
	function TEXT,
	description TEXT,
	validation_contact TEXT,
	team_email TEXT,
	shutdown_procedure TEXT,
	affinity TEXT,
	week_month TEXT,
	application_day TEXT,
	start_time TEXT,
	end_time TEXT,
	importance_level TEXT,
	criticality TEXT,
	scope_pci TEXT,
	scope_sox TEXT,
	scope_pagonxt TEXT,
	ip_service TEXT,
	ip_backup TEXT,
	ip_branca TEXT,
	zone TEXT,
	country TEXT,
	source_sheet TEXT
);
CREATE TABLE IF NOT EXISTS vulnerabilities (
	qid BIGINT PRIMARY KEY,
	title TEXT,
	severity TEXT,
	threat TEXT,
	solution TEXT,
	category TEXT
);
CREATE TABLE IF NOT EXISTS vulnerability_detections (
	id BIGSERIAL PRIMARY KEY,
	qid BIGINT REFERENCES vulnerabilities(qid),
	asset_name TEXT,
	asset_ip TEXT,
	environment TEXT,
	os TEXT,
	os_version TEXT,
	status TEXT,
	first_detected TEXT,
	last_detected TEXT,
	detection_age INTEGER,
	results TEXT,
	overdue TEXT,
	source TEXT
);
CREATE TABLE IF NOT EXISTS import_log (
	id BIGSERIAL PRIMARY KEY,
	imported_at TEXT,
	source_file TEXT,
	sheets_imported TEXT,
	total_records INTEGER,
	status TEXT,
	message TEXT
);
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	display_name TEXT,
	role TEXT DEFAULT 'viewer',
	is_active INTEGER DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_servers_env ON servers(environment);
CREATE INDEX IF NOT EXISTS idx_gmuds_status ON gmuds(status);
CREATE INDEX IF NOT EXISTS idx_gmuds_month ON gmuds(year, month);
CREATE INDEX IF NOT EXISTS idx_cmdb_env ON cmdb_databases(environment);
CREATE INDEX IF NOT EXISTS idx_cmdb_full_client ON cmdb_full(client);
CREATE INDEX IF NOT EXISTS idx_cmdb_full_host ON cmdb_full(hostname);
CREATE INDEX IF NOT EXISTS idx_detections_qid ON vulnerability_detections(qid);
CREATE INDEX IF NOT EXISTS idx_detections_asset ON vulnerability_detections(asset_name);
`
