package storefront

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileBackend struct {
	updates   []ProfileUpdate
	updateErr error
	addresses []Address
	listCalls int
}

func (f *fakeProfileBackend) UpdateProfile(_ context.Context, u ProfileUpdate) (*User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates = append(f.updates, u)
	return &User{ID: "u1", Name: u.Name, Phone: u.Phone, Email: "ann@example.com"}, nil
}

func (f *fakeProfileBackend) Addresses(context.Context) ([]Address, error) {
	f.listCalls++
	return slices.Clone(f.addresses), nil
}

func (f *fakeProfileBackend) AddAddress(_ context.Context, a Address) (string, error) {
	a.ID = "addr" + string(rune('0'+len(f.addresses)))
	f.addresses = append(f.addresses, a)
	return "Address added", nil
}

func (f *fakeProfileBackend) UpdateAddress(_ context.Context, a Address) (string, error) {
	for i := range f.addresses {
		if f.addresses[i].ID == a.ID {
			f.addresses[i] = a
		}
	}
	return "Address updated", nil
}

func (f *fakeProfileBackend) DeleteAddress(_ context.Context, id string) (string, error) {
	f.addresses = slices.DeleteFunc(f.addresses, func(a Address) bool { return a.ID == id })
	return "Address deleted", nil
}

func TestProfileEditorRefreshRespectsEditing(t *testing.T) {
	e := NewProfileEditor(&fakeProfileBackend{}, nil, nil)
	e.Refresh(&User{ID: "u1", Name: "Ann", Phone: "1"})
	assert.Equal(t, Viewing, e.State())
	assert.Equal(t, "Ann", e.Form().Name)

	assert.ErrorIs(t, e.SetName("nope"), ErrNotEditing)

	e.BeginEdit()
	require.NoError(t, e.SetName("Annie"))
	e.Refresh(&User{ID: "u1", Name: "Server Ann", Phone: "2"})
	assert.Equal(t, "Annie", e.Form().Name, "background refresh must not clobber edits")

	e.Cancel()
	assert.Equal(t, Viewing, e.State())
	assert.Equal(t, ProfileForm{Name: "Server Ann", Phone: "2"}, e.Form())
}

func TestProfileEditorSave(t *testing.T) {
	backend := &fakeProfileBackend{}
	notes := &recordingNotifier{}
	e := NewProfileEditor(backend, nil, notes)
	e.Refresh(&User{ID: "u1", Name: "Ann"})

	assert.ErrorIs(t, e.Save(context.Background(), nil), ErrNotEditing)

	e.BeginEdit()
	require.NoError(t, e.SetName("Annie"))
	require.NoError(t, e.SetPhone("555"))

	backend.updateErr = &APIError{Status: 409, Message: "Name is already taken"}
	assert.Error(t, e.Save(context.Background(), nil))
	assert.Equal(t, Editing, e.State())
	assert.Equal(t, "Annie", e.Form().Name)
	assert.Equal(t, "Name is already taken", notes.lastError())

	backend.updateErr = nil
	require.NoError(t, e.Save(context.Background(), nil))
	assert.Equal(t, Viewing, e.State())
	assert.Equal(t, []ProfileUpdate{{Name: "Annie", Phone: "555"}}, backend.updates)
	assert.Equal(t, "555", e.Form().Phone)
	assert.Contains(t, notes.successes, "Profile updated successfully!")
}

func TestProfileEditorSaveRechecksSession(t *testing.T) {
	b := newFakeBackend()
	b.session = &User{ID: "u1", Name: "Ann"}
	s, _ := newTestStore(t, b)
	_, err := s.RefreshUser(context.Background())
	require.NoError(t, err)

	e := NewProfileEditor(&fakeProfileBackend{}, s, nil)
	assert.Equal(t, "Ann", e.Form().Name)

	e.BeginEdit()
	require.NoError(t, e.SetName("Annie"))
	b.mu.Lock()
	b.session = &User{ID: "u1", Name: "Annie", Phone: "9"}
	b.mu.Unlock()

	require.NoError(t, e.Save(context.Background(), nil))
	assert.Equal(t, "Annie", s.User().Name)
	assert.Equal(t, "9", e.Form().Phone, "form shows the re-checked session user")
}

func TestProfileEditorAddresses(t *testing.T) {
	backend := &fakeProfileBackend{}
	e := NewProfileEditor(backend, nil, nil)
	e.Refresh(&User{ID: "u1", Email: "ann@example.com"})

	require.NoError(t, e.AddAddress(context.Background(), Address{FirstName: "Ann", City: "Oslo"}))
	require.Len(t, e.Addresses(), 1)
	assert.Equal(t, "ann@example.com", e.Addresses()[0].Email, "email defaults to the session user")

	addr := e.Addresses()[0]
	addr.City = "Bergen"
	require.NoError(t, e.UpdateAddress(context.Background(), addr))
	assert.Equal(t, "Bergen", e.Addresses()[0].City)

	require.NoError(t, e.DeleteAddress(context.Background(), addr.ID))
	assert.Empty(t, e.Addresses())
	assert.Equal(t, 3, backend.listCalls, "list reloads after every change")
}
