package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. Column names are the external
// contract shared with reporting tooling, so they keep the original
// camelCase spelling.
const schema = `
CREATE TABLE IF NOT EXISTS Groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    value REAL NOT NULL,
    numberOfSubscribers INTEGER NOT NULL,
    duration INTEGER NOT NULL,
    startDate TEXT NOT NULL,
    foremanCommissionPercentage REAL,
    installmentAmount REAL NOT NULL,
    isActive INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS Subscribers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    phoneNumber TEXT NOT NULL UNIQUE,
    address TEXT,
    createdDate INTEGER NOT NULL,
    isActive INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS Enrollments (
    id TEXT PRIMARY KEY,
    subscriberId TEXT NOT NULL,
    groupId TEXT NOT NULL,
    assignedChitNumber INTEGER NOT NULL,
    joinDate TEXT NOT NULL,
    UNIQUE (subscriberId, groupId),
    UNIQUE (groupId, assignedChitNumber),
    FOREIGN KEY (subscriberId) REFERENCES Subscribers(id),
    FOREIGN KEY (groupId) REFERENCES Groups(id)
);

CREATE TABLE IF NOT EXISTS Installments (
    id TEXT PRIMARY KEY,
    groupId TEXT NOT NULL,
    monthNumber INTEGER NOT NULL,
    dueDate TEXT NOT NULL,
    isAuctionConducted INTEGER NOT NULL DEFAULT 0,
    auctionPrizeAmount REAL,
    auctionWinnerId TEXT,
    isCompleted INTEGER NOT NULL DEFAULT 0,
    UNIQUE (groupId, monthNumber),
    FOREIGN KEY (groupId) REFERENCES Groups(id),
    FOREIGN KEY (auctionWinnerId) REFERENCES Subscribers(id)
);

CREATE TABLE IF NOT EXISTS InstallmentPayments (
    id TEXT PRIMARY KEY,
    installmentId TEXT NOT NULL,
    subscriberId TEXT NOT NULL,
    paymentDate INTEGER NOT NULL,
    amountPaid REAL NOT NULL,
    notes TEXT,
    FOREIGN KEY (installmentId) REFERENCES Installments(id),
    FOREIGN KEY (subscriberId) REFERENCES Subscribers(id)
);

CREATE TABLE IF NOT EXISTS Dividends (
    id TEXT PRIMARY KEY,
    groupId TEXT NOT NULL,
    subscriberId TEXT NOT NULL,
    auctionDate TEXT NOT NULL,
    dividendAmount REAL NOT NULL,
    distributionDate TEXT NOT NULL,
    UNIQUE (groupId, subscriberId, auctionDate),
    FOREIGN KEY (groupId) REFERENCES Groups(id),
    FOREIGN KEY (subscriberId) REFERENCES Subscribers(id)
);

CREATE TABLE IF NOT EXISTS Users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    displayName TEXT NOT NULL,
    passwordHash TEXT NOT NULL,
    createdAt INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_enrollments_groupId ON Enrollments(groupId);
CREATE INDEX IF NOT EXISTS idx_installments_groupId ON Installments(groupId);
CREATE INDEX IF NOT EXISTS idx_payments_installmentId ON InstallmentPayments(installmentId);
CREATE INDEX IF NOT EXISTS idx_payments_subscriberId ON InstallmentPayments(subscriberId);
CREATE INDEX IF NOT EXISTS idx_dividends_groupId ON Dividends(groupId);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
