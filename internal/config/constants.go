package config

// DefaultDatabasePath is the default path for the rental database file.
const DefaultDatabasePath = "./vehicle-rental.db"
