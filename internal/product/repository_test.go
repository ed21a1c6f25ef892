package product

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "price", "stock", "image_url"}).
			AddRow(1, "Laptop Pro", 1200.0, 10000, "https://img/laptop").
			AddRow(2, "Smartphone X", 750.0, 1500, "https://img/phone")

		mock.ExpectQuery(`SELECT id, name, price, stock, image_url FROM products ORDER BY id`).
			WillReturnRows(rows)

		products, err := repo.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Equal(t, "Laptop Pro", products[0].Name)
		assert.Equal(t, 1200.0, products[0].Price)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, price, stock, image_url FROM products`).
			WillReturnError(errors.New("db error"))

		_, err := repo.GetAll(ctx)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "price", "stock", "image_url"}).
			AddRow(1, "Laptop Pro", 1200.0, 10000, "https://img/laptop")

		mock.ExpectQuery(`SELECT id, name, price, stock, image_url FROM products WHERE id = \$1`).
			WithArgs(1).
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Laptop Pro", p.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, price, stock, image_url FROM products WHERE id = \$1`).
			WithArgs(999).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO products \(name, price, stock, image_url\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING id`).
		WithArgs("4K Monitor", 400.0, 800, "https://img/monitor").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	p, err := repo.Create(context.Background(), Product{
		Name:     "4K Monitor",
		Price:    400.0,
		Stock:    800,
		ImageURL: "https://img/monitor",
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
