package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/medics-admin/internal/wizard"
)

func exerciseStore(t *testing.T, s DraftStore) {
	ctx := context.Background()
	key := WizardKey(uuid.NewString())

	var w wizard.Wizard
	_, err := s.Get(ctx, key, &w)
	assert.ErrorIs(t, err, ErrNotFound)

	in := wizard.New()
	in.Step = wizard.Step2
	in.Values["firstName"] = "Cristina"
	require.NoError(t, s.Put(ctx, key, in))

	savedAt, err := s.Get(ctx, key, &w)
	require.NoError(t, err)
	assert.False(t, savedAt.IsZero())
	assert.Equal(t, wizard.Step2, w.Step)
	assert.Equal(t, "Cristina", w.Values["firstName"])

	in.Step = wizard.Step3
	require.NoError(t, s.Put(ctx, key, in))
	_, err = s.Get(ctx, key, &w)
	require.NoError(t, err)
	assert.Equal(t, wizard.Step3, w.Step)

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key, &w)
	assert.ErrorIs(t, err, ErrNotFound)
	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, key))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()
	w := wizard.New()
	w.Values["city"] = "Boston"
	require.NoError(t, s.Put(context.Background(), "k", w))
	w.Values["city"] = "Chicago"

	var got wizard.Wizard
	_, err := s.Get(context.Background(), "k", &got)
	require.NoError(t, err)
	assert.Equal(t, "Boston", got.Values["city"])
}

// Runs only against a real server: MONGO_TEST_URI=mongodb://localhost:27017
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	db := client.Database("medics_admin_test")
	defer db.Drop(context.Background())

	exerciseStore(t, NewMongoStore(db))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "doctor_42", DoctorKey("42"))
	assert.Equal(t, "wizard_abc", WizardKey("abc"))
}
