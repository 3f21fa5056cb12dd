package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	PRAGMA foreign_keys = ON;
	CREATE TABLE categories(id TEXT PRIMARY KEY, name TEXT NOT NULL, slug TEXT UNIQUE,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE products(id TEXT PRIMARY KEY,
	  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	  name TEXT NOT NULL, slug TEXT UNIQUE, description TEXT NOT NULL DEFAULT '',
	  price NUMERIC NOT NULL, stock INTEGER NOT NULL DEFAULT 0,
	  image TEXT NOT NULL DEFAULT '', is_featured INTEGER NOT NULL DEFAULT 0,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT);
	CREATE TABLE users(id TEXT PRIMARY KEY, username TEXT UNIQUE, email TEXT UNIQUE,
	  first_name TEXT DEFAULT '', last_name TEXT DEFAULT '',
	  password_hash TEXT, role TEXT, created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE user_profiles(user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	  address TEXT DEFAULT '', phone TEXT DEFAULT '', updated_at TEXT);
	CREATE TABLE sessions(id TEXT PRIMARY KEY, user_id TEXT REFERENCES users(id) ON DELETE CASCADE,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, last_seen TEXT);
	CREATE TABLE cart_items(id TEXT PRIMARY KEY,
	  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	  quantity INTEGER NOT NULL, created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT,
	  UNIQUE(user_id, product_id));
	CREATE TABLE wishlist_items(id TEXT PRIMARY KEY,
	  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
	  UNIQUE(user_id, product_id));
	CREATE TABLE reviews(id TEXT PRIMARY KEY,
	  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  rating INTEGER NOT NULL, comment TEXT NOT NULL,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
	  UNIQUE(user_id, product_id));

	INSERT INTO categories(id,name,slug) VALUES ('cat-1','Gadgets','gadgets');
	INSERT INTO products(id,category_id,name,slug,price,stock) VALUES
	  ('p-widget','cat-1','Widget','widget',10.00,5),
	  ('p-gizmo','cat-1','Gizmo','gizmo',9.995,3);
	INSERT INTO users(id,username,email,password_hash,role) VALUES
	  ('u-test','tester','tester@jeetech.test','x','USER');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}
