package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-dashboard/internal/model"
	"github.com/jwalitptl/hospital-dashboard/pkg/metrics"
)

type recorded struct {
	method string
	path   string
	query  string
	body   string
	ctype  string
	auth   string
}

type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (rec *recorder) all() []recorded {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]recorded(nil), rec.calls...)
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.calls = append(rec.calls, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query().Encode(),
			body:   string(b),
			ctype:  r.Header.Get("Content-Type"),
			auth:   r.Header.Get("Authorization"),
		})
		rec.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := New(Config{BaseURL: srv.URL + "/api/"}, zerolog.Nop(), metrics.NewNop())
	return c, rec
}

func TestListPersonnels(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.Personnel{
			{ID: 1, Nom: "Jean", Prenom: "Dupont", Fonction: model.FonctionMedecin},
			{ID: 2, Nom: "Marie", Prenom: "Curie", Fonction: model.FonctionDirecteur},
		})
	})

	items, err := c.Personnels.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "Jean", items[0].Nom)

	got := calls.all()
	require.Len(t, got, 1)
	assert.Equal(t, "GET", got[0].method)
	assert.Equal(t, "/api/personnels", got[0].path)
	assert.Empty(t, got[0].auth)
}

func TestEndpointContract(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	_, _, err := c.CreatePatient(ctx, 7, model.PatientInput{Nom: "Durand", Prenom: "Paul", SituationMedicale: model.SituationStable})
	require.NoError(t, err)
	require.NoError(t, c.UpdatePatient(ctx, model.PatientUpdate{ID: 3, Nom: "Durand", SectionID: 7}))
	require.NoError(t, c.Patients.Delete(ctx, 3))
	_, _, err = c.CreateSection(ctx, model.SectionInput{Nom: "Cardio"}, []int64{1, 2})
	require.NoError(t, err)
	require.NoError(t, c.UpdateSection(ctx, 4, model.SectionInput{Nom: "Cardio"}, []int64{2}))
	require.NoError(t, c.Sections.Delete(ctx, 4))
	require.NoError(t, c.Batiments.Update(ctx, 5, model.BatimentInput{ID: 5, Nom: "A"}, nil))
	require.NoError(t, c.Personnels.Delete(ctx, 9))

	want := []struct{ method, path, query string }{
		{"POST", "/api/patients/create", "sectionId=7"},
		{"PUT", "/api/patients/update/7", ""},
		{"DELETE", "/api/patients/delete/3", ""},
		{"POST", "/api/sections/create", "personnelsIds=1%2C2"},
		{"PUT", "/api/sections/update/4", "personnelsIds=2"},
		{"DELETE", "/api/sections/4", ""},
		{"PUT", "/api/batiments/5", ""},
		{"DELETE", "/api/personnels/9", ""},
	}
	all := calls.all()
	require.Len(t, all, len(want))
	for i, w := range want {
		got := all[i]
		assert.Equal(t, w.method, got.method, "call %d", i)
		assert.Equal(t, w.path, got.path, "call %d", i)
		assert.Equal(t, w.query, got.query, "call %d", i)
		assert.Equal(t, "application/json", got.ctype, "call %d", i)
	}

	assert.JSONEq(t, `{"nom":"Durand","prenom":"Paul","situationMedicale":"Stable"}`, all[0].body)
	assert.JSONEq(t, `{"id":3,"nom":"Durand","prenom":"","situationMedicale":"","sectionId":7}`, all[1].body)
}

func TestServicesHaveNoDelete(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	assert.False(t, c.Services.CanDelete())
	assert.ErrorIs(t, c.Services.Delete(context.Background(), 1), ErrUnsupported)
	assert.Empty(t, calls.all())
}

func TestCreateDecodesEchoedRecord(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":11,"nom":"Bloc B","fonctionnalite":"chirurgie"}`))
	})

	created, ok, err := c.Batiments.Create(context.Background(), model.BatimentInput{Nom: "Bloc B"}, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(11), created.ID)
}

func TestCreateToleratesEmptyBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	_, ok, err := c.Services.Create(context.Background(), model.ServiceInput{Nom: "Cardio", Batiment: model.Ref{ID: 1}}, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"ignored"}`))
		})

		_, err := c.Patients.Get(context.Background(), 5)
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusNotFound, se.StatusCode)
		assert.True(t, IsNotFound(err))
	})

	t.Run("decode", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"id":1,`))
		})

		_, err := c.Sections.List(context.Background())
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("network", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		c := New(Config{BaseURL: srv.URL + "/api"}, zerolog.Nop(), metrics.NewNop())

		_, err := c.Batiments.List(context.Background())
		assert.ErrorIs(t, err, ErrNetwork)
	})
}

func TestNoRetryOnFailure(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Doctors(context.Background())
	require.Error(t, err)
	got := calls.all()
	require.Len(t, got, 1)
	assert.Equal(t, "/api/personnels/doctors", got[0].path)
}
