package catalog

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeded(t *testing.T) *Store {
	t.Helper()
	s, err := NewSeededStore()
	require.NoError(t, err)
	return s
}

func Test_Seeded_Codes_Are_Retrievable(t *testing.T) {
	req := require.New(t)
	s := newSeeded(t)

	for _, seed := range DefaultSeed() {
		got, ok := s.Get(seed.Code)
		req.True(ok, seed.Code)
		req.Equal(seed.Code, got.Code)
		req.Equal(seed, got)
	}
	req.Equal(len(DefaultSeed()), s.Len())
}

func Test_Get_Unknown_Code_Is_Absent(t *testing.T) {
	s := newSeeded(t)
	got, ok := s.Get("nonexistent.code")
	assert.False(t, ok)
	assert.Zero(t, got)
}

func Test_Upsert_Then_Get_Returns_Same_Record(t *testing.T) {
	req := require.New(t)
	s := newSeeded(t)
	m := Message{Code: "custom.code.one", TechnicalDetail: "t", UserMessage: "u", GeneralDescription: "g"}

	req.NoError(s.Upsert(&m))
	got, ok := s.Get(m.Code)
	req.True(ok)
	req.Equal(m, got)
}

func Test_Upsert_Replaces_Whole_Record(t *testing.T) {
	req := require.New(t)
	s := newSeeded(t)

	req.NoError(s.Upsert(&Message{Code: "auth.login.failed", UserMessage: "only user"}))
	got, ok := s.Get("auth.login.failed")
	req.True(ok)
	req.Equal(Message{Code: "auth.login.failed", UserMessage: "only user"}, got)
}

func Test_Upsert_Copies_Input(t *testing.T) {
	req := require.New(t)
	s, err := NewStore(nil)
	req.NoError(err)

	m := &Message{Code: "a", UserMessage: "before"}
	req.NoError(s.Upsert(m))
	m.UserMessage = "after"

	got, _ := s.Get("a")
	req.Equal("before", got.UserMessage)
}

func Test_Upsert_Rejects_Invalid_Input(t *testing.T) {
	s := newSeeded(t)
	size := s.Len()

	assert.ErrorIs(t, s.Upsert(nil), ErrInvalidArgument)
	assert.ErrorIs(t, s.Upsert(&Message{UserMessage: "no code"}), ErrInvalidArgument)
	assert.Equal(t, size, s.Len())
}

func Test_Upsert_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	s := newSeeded(t)
	m := Message{Code: "custom.idem", UserMessage: "x"}

	req.NoError(s.Upsert(&m))
	once := s.GetAll()
	req.NoError(s.Upsert(&m))
	req.Equal(once, s.GetAll())
}

func Test_Remove(t *testing.T) {
	req := require.New(t)
	s := newSeeded(t)
	size := s.Len()

	removed, ok := s.Remove("auth.token.expired")
	req.True(ok)
	req.Equal("auth.token.expired", removed.Code)
	req.Equal(size-1, s.Len())

	_, ok = s.Get("auth.token.expired")
	req.False(ok)

	removed, ok = s.Remove("auth.token.expired")
	req.False(ok)
	req.Zero(removed)
	req.Equal(size-1, s.Len())
}

func Test_GetAll_Tracks_Size(t *testing.T) {
	req := require.New(t)
	s := newSeeded(t)
	size := len(s.GetAll())
	req.Equal(s.Len(), size)

	req.NoError(s.Upsert(&Message{Code: "custom.size"}))
	req.Len(s.GetAll(), size+1)

	s.Remove("custom.size")
	req.Len(s.GetAll(), size)
	s.Remove("custom.size")
	req.Len(s.GetAll(), size)
}

func Test_GetAll_Is_A_Snapshot(t *testing.T) {
	req := require.New(t)
	s := newSeeded(t)

	all := s.GetAll()
	delete(all, "auth.login.failed")
	all["injected"] = Message{Code: "injected"}

	_, ok := s.Get("auth.login.failed")
	req.True(ok)
	_, ok = s.Get("injected")
	req.False(ok)
}

func Test_Codes_Are_Sorted(t *testing.T) {
	s, err := NewStore([]Message{{Code: "b"}, {Code: "c"}, {Code: "a"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, s.Codes())
}

func Test_NewStore_Rejects_Empty_Seed_Code(t *testing.T) {
	_, err := NewStore([]Message{{Code: "ok"}, {UserMessage: "missing code"}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func Test_End_To_End_Scenario(t *testing.T) {
	req := require.New(t)
	s := newSeeded(t)

	got, ok := s.Get("auth.login.failed")
	req.True(ok)
	req.Equal("Usuario o contraseña incorrectos.", got.UserMessage)

	req.NoError(s.Upsert(&Message{Code: "custom.code.one", UserMessage: "hola"}))
	req.Contains(s.GetAll(), "custom.code.one")

	_, ok = s.Remove("custom.code.one")
	req.True(ok)
	_, ok = s.Get("custom.code.one")
	req.False(ok)
}

// Every payload written below has all four fields derived from the same n, so
// a reader can detect a record assembled from two different writes.
func payload(code string, n int) Message {
	return Message{
		Code:               code,
		TechnicalDetail:    fmt.Sprintf("technical-%d", n),
		UserMessage:        fmt.Sprintf("user-%d", n),
		GeneralDescription: fmt.Sprintf("general-%d", n),
	}
}

func consistent(m Message) bool {
	var a, b, c int
	if _, err := fmt.Sscanf(m.TechnicalDetail, "technical-%d", &a); err != nil {
		return false
	}
	if _, err := fmt.Sscanf(m.UserMessage, "user-%d", &b); err != nil {
		return false
	}
	if _, err := fmt.Sscanf(m.GeneralDescription, "general-%d", &c); err != nil {
		return false
	}
	return a == b && b == c
}

func Test_Concurrent_Upserts_Same_Code(t *testing.T) {
	req := require.New(t)
	s, err := NewStore(nil)
	req.NoError(err)

	const writers = 64
	const readers = 8
	code := "race.code"
	req.NoError(s.Upsert(&Message{Code: code, TechnicalDetail: "technical-0", UserMessage: "user-0", GeneralDescription: "general-0"}))

	var torn sync.Map
	var wg sync.WaitGroup
	stop := make(chan struct{})
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if m, ok := s.Get(code); ok && !consistent(m) {
					torn.Store(m, true)
				}
				if m, ok := s.GetAll()[code]; ok && !consistent(m) {
					torn.Store(m, true)
				}
			}
		}()
	}

	var writersWG sync.WaitGroup
	for w := 1; w <= writers; w++ {
		writersWG.Add(1)
		go func(n int) {
			defer writersWG.Done()
			m := payload(code, n)
			_ = s.Upsert(&m)
		}(w)
	}
	writersWG.Wait()
	close(stop)
	wg.Wait()

	final, ok := s.Get(code)
	req.True(ok)
	req.True(consistent(final))
	var n int
	_, err = fmt.Sscanf(final.UserMessage, "user-%d", &n)
	req.NoError(err)
	req.GreaterOrEqual(n, 1)
	req.LessOrEqual(n, writers)
	req.Equal(1, s.Len())

	torn.Range(func(k, _ any) bool {
		t.Errorf("observed torn record %+v", k)
		return true
	})
}

func Test_Concurrent_Mixed_Operations(t *testing.T) {
	req := require.New(t)
	s := newSeeded(t)
	seeded := s.Len()

	var wg sync.WaitGroup
	for w := 0; w < 32; w++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			code := fmt.Sprintf("mixed.%d", n)
			for i := 0; i < 100; i++ {
				m := payload(code, i)
				_ = s.Upsert(&m)
				_, _ = s.Get(code)
				_ = s.GetAll()
				if i%2 == 0 {
					s.Remove(code)
				}
			}
		}(w)
	}
	wg.Wait()

	// the last iteration (i=99) is odd, so every mixed code survives
	req.Equal(seeded+32, s.Len())
	for code, m := range s.GetAll() {
		req.Equal(code, m.Code)
	}
}
