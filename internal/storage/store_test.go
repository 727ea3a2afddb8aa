package storage

import (
	"context"
	"time"

	"github.com/budgettracker/expense-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite runs the same session contract against every backend.
type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store Store
	open  func(ctx context.Context) (Store, error)
}

func (suite *StoreTestSuite) SetupTest() {
	suite.ctx = context.Background()

	store, err := suite.open(suite.ctx)
	require.NoError(suite.T(), err, "failed to open test database")
	require.NoError(suite.T(), store.Migrate(suite.ctx), "failed to migrate test database")
	suite.store = store
}

func (suite *StoreTestSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Close()
	}
}

// inSession runs fn in a session and commits it.
func (suite *StoreTestSuite) inSession(fn func(sess Session)) {
	sess, err := suite.store.Begin(suite.ctx, false)
	require.NoError(suite.T(), err)
	defer sess.Close(suite.ctx)

	fn(sess)
	require.NoError(suite.T(), sess.Commit(suite.ctx))
}

func (suite *StoreTestSuite) createUser(sess Session, email string) *models.User {
	user, err := sess.CreateUser(suite.ctx, &models.CreateUserRequest{Name: "Test", Email: email}, "hash")
	require.NoError(suite.T(), err)
	return user
}

func (suite *StoreTestSuite) createExpense(sess Session, userID int64, category string, amount float64) *models.Expense {
	expense, err := sess.CreateExpense(suite.ctx, &models.Expense{
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Date:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(suite.T(), err)
	return expense
}

func (suite *StoreTestSuite) TestCreateUserReturnsGeneratedFields() {
	suite.inSession(func(sess Session) {
		user := suite.createUser(sess, "a@example.com")

		assert.NotZero(suite.T(), user.ID)
		assert.Equal(suite.T(), "a@example.com", user.Email)
		assert.Equal(suite.T(), "hash", user.PasswordHash)
		assert.WithinDuration(suite.T(), time.Now(), user.CreatedAt, 5*time.Second)
	})
}

func (suite *StoreTestSuite) TestCreateUserDuplicateEmail() {
	suite.inSession(func(sess Session) {
		suite.createUser(sess, "dup@example.com")
	})

	sess, err := suite.store.Begin(suite.ctx, false)
	require.NoError(suite.T(), err)
	defer sess.Close(suite.ctx)

	_, err = sess.CreateUser(suite.ctx, &models.CreateUserRequest{Name: "Other", Email: "dup@example.com"}, "other-hash")
	assert.ErrorIs(suite.T(), err, ErrDuplicateEmail)
}

func (suite *StoreTestSuite) TestGetUserByEmail() {
	suite.inSession(func(sess Session) {
		created := suite.createUser(sess, "find@example.com")

		found, err := sess.GetUserByEmail(suite.ctx, "find@example.com")
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), found)
		assert.Equal(suite.T(), created.ID, found.ID)
		assert.Equal(suite.T(), "hash", found.PasswordHash)

		missing, err := sess.GetUserByEmail(suite.ctx, "missing@example.com")
		assert.NoError(suite.T(), err)
		assert.Nil(suite.T(), missing)
	})
}

func (suite *StoreTestSuite) TestCreateExpenseRoundTrip() {
	note := "groceries"
	suite.inSession(func(sess Session) {
		user := suite.createUser(sess, "owner@example.com")

		created, err := sess.CreateExpense(suite.ctx, &models.Expense{
			UserID:   user.ID,
			Category: "food",
			Amount:   42.50,
			Date:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Note:     &note,
		})
		require.NoError(suite.T(), err)

		assert.NotZero(suite.T(), created.ID)
		assert.Equal(suite.T(), user.ID, created.UserID)
		assert.Equal(suite.T(), 42.50, created.Amount)
		assert.Equal(suite.T(), "2026-03-14", created.Date.Format(models.DateLayout))
		require.NotNil(suite.T(), created.Note)
		assert.Equal(suite.T(), "groceries", *created.Note)
		assert.False(suite.T(), created.CreatedAt.IsZero())

		fetched, err := sess.GetExpense(suite.ctx, created.ID, user.ID)
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), fetched)
		assert.Equal(suite.T(), "food", fetched.Category)
		assert.Equal(suite.T(), 42.50, fetched.Amount)
	})
}

func (suite *StoreTestSuite) TestCreateExpenseWithoutNote() {
	suite.inSession(func(sess Session) {
		user := suite.createUser(sess, "nonote@example.com")
		created := suite.createExpense(sess, user.ID, "misc", 1)
		assert.Nil(suite.T(), created.Note)
	})
}

func (suite *StoreTestSuite) TestCreateExpenseRequiresExistingUser() {
	sess, err := suite.store.Begin(suite.ctx, false)
	require.NoError(suite.T(), err)
	defer sess.Close(suite.ctx)

	_, err = sess.CreateExpense(suite.ctx, &models.Expense{UserID: 999, Category: "food", Amount: 1, Date: time.Now()})
	assert.Error(suite.T(), err)
}

func (suite *StoreTestSuite) TestListExpensesNewestFirstAndScoped() {
	suite.inSession(func(sess Session) {
		alice := suite.createUser(sess, "alice@example.com")
		bob := suite.createUser(sess, "bob@example.com")

		suite.createExpense(sess, alice.ID, "first", 1)
		suite.createExpense(sess, bob.ID, "bob-only", 99)
		suite.createExpense(sess, alice.ID, "second", 2)
		suite.createExpense(sess, alice.ID, "third", 3)

		expenses, err := sess.ListExpenses(suite.ctx, alice.ID)
		require.NoError(suite.T(), err)
		require.Len(suite.T(), expenses, 3)

		assert.Equal(suite.T(), "third", expenses[0].Category)
		assert.Equal(suite.T(), "second", expenses[1].Category)
		assert.Equal(suite.T(), "first", expenses[2].Category)
		for _, e := range expenses {
			assert.Equal(suite.T(), alice.ID, e.UserID)
		}
	})
}

func (suite *StoreTestSuite) TestListExpensesEmpty() {
	suite.inSession(func(sess Session) {
		user := suite.createUser(sess, "empty@example.com")

		expenses, err := sess.ListExpenses(suite.ctx, user.ID)
		require.NoError(suite.T(), err)
		assert.NotNil(suite.T(), expenses)
		assert.Empty(suite.T(), expenses)
	})
}

func (suite *StoreTestSuite) TestDeleteExpenseScopedByOwner() {
	var alice, bob *models.User
	var expense *models.Expense
	suite.inSession(func(sess Session) {
		alice = suite.createUser(sess, "alice@example.com")
		bob = suite.createUser(sess, "bob@example.com")
		expense = suite.createExpense(sess, bob.ID, "rent", 500)
	})

	suite.inSession(func(sess Session) {
		err := sess.DeleteExpense(suite.ctx, expense.ID, alice.ID)
		assert.ErrorIs(suite.T(), err, ErrNotFound)

		other, err := sess.GetExpense(suite.ctx, expense.ID, alice.ID)
		assert.NoError(suite.T(), err)
		assert.Nil(suite.T(), other, "foreign expense must look absent")

		still, err := sess.GetExpense(suite.ctx, expense.ID, bob.ID)
		require.NoError(suite.T(), err)
		assert.NotNil(suite.T(), still)

		require.NoError(suite.T(), sess.DeleteExpense(suite.ctx, expense.ID, bob.ID))
		assert.ErrorIs(suite.T(), sess.DeleteExpense(suite.ctx, expense.ID, bob.ID), ErrNotFound)
	})
}

func (suite *StoreTestSuite) TestCloseWithoutCommitRollsBack() {
	sess, err := suite.store.Begin(suite.ctx, false)
	require.NoError(suite.T(), err)
	suite.createUser(sess, "ghost@example.com")
	require.NoError(suite.T(), sess.Close(suite.ctx))

	suite.inSession(func(sess Session) {
		user, err := sess.GetUserByEmail(suite.ctx, "ghost@example.com")
		assert.NoError(suite.T(), err)
		assert.Nil(suite.T(), user)
	})
}

func (suite *StoreTestSuite) TestCloseAfterCommitIsNoop() {
	sess, err := suite.store.Begin(suite.ctx, false)
	require.NoError(suite.T(), err)
	suite.createUser(sess, "kept@example.com")
	require.NoError(suite.T(), sess.Commit(suite.ctx))
	assert.NoError(suite.T(), sess.Close(suite.ctx))

	suite.inSession(func(sess Session) {
		user, err := sess.GetUserByEmail(suite.ctx, "kept@example.com")
		assert.NoError(suite.T(), err)
		assert.NotNil(suite.T(), user)
	})
}

func (suite *StoreTestSuite) TestMigrateIsIdempotent() {
	assert.NoError(suite.T(), suite.store.Migrate(suite.ctx))
	assert.NoError(suite.T(), suite.store.Ping(suite.ctx))
}

