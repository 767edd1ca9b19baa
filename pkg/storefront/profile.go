package storefront

import (
	"context"
	"errors"
	"slices"
	"sync"
)

type EditorState int

const (
	Viewing EditorState = iota
	Editing
)

func (s EditorState) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

var ErrNotEditing = errors.New("profile is not being edited")

// ProfileBackend is the server surface behind the profile page.
type ProfileBackend interface {
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error)
	Addresses(ctx context.Context) ([]Address, error)
	AddAddress(ctx context.Context, addr Address) (string, error)
	UpdateAddress(ctx context.Context, addr Address) (string, error)
	DeleteAddress(ctx context.Context, id string) (string, error)
}

// ProfileForm is the editable part of the profile page.
type ProfileForm struct {
	Name     string
	Email    string
	Phone    string
	ImageURL string
}

// ProfileEditor drives the profile page. In Editing, session refreshes
// update the remembered user but never the form being typed into.
type ProfileEditor struct {
	backend  ProfileBackend
	session  *Store
	notifier Notifier

	mu        sync.Mutex
	state     EditorState
	form      ProfileForm
	last      *User
	addresses []Address
}

func NewProfileEditor(backend ProfileBackend, session *Store, notifier Notifier) *ProfileEditor {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	e := &ProfileEditor{backend: backend, session: session, notifier: notifier}
	if session != nil {
		e.Refresh(session.User())
	}
	return e
}

func (e *ProfileEditor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *ProfileEditor) Form() ProfileForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

func (e *ProfileEditor) Addresses() []Address {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.addresses)
}

// Refresh records the latest session user and, in Viewing, resets the form
// from it.
func (e *ProfileEditor) Refresh(user *User) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if user == nil {
		return
	}
	e.last = cloneUser(user)
	if e.state == Viewing {
		e.form = formFor(e.last)
	}
}

func (e *ProfileEditor) BeginEdit() {
	e.mu.Lock()
	e.state = Editing
	e.mu.Unlock()
}

// Cancel discards the edits and shows the last known user again.
func (e *ProfileEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Viewing
	if e.last != nil {
		e.form = formFor(e.last)
	}
}

func (e *ProfileEditor) SetName(name string) error {
	return e.edit(func(f *ProfileForm) { f.Name = name })
}

func (e *ProfileEditor) SetPhone(phone string) error {
	return e.edit(func(f *ProfileForm) { f.Phone = phone })
}

func (e *ProfileEditor) edit(fn func(*ProfileForm)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Editing {
		return ErrNotEditing
	}
	fn(&e.form)
	return nil
}

// Save submits the form with an optional new image. On success the session
// is re-checked and the editor returns to Viewing; on failure it stays in
// Editing with the form intact.
func (e *ProfileEditor) Save(ctx context.Context, image *ImageFile) error {
	e.mu.Lock()
	if e.state != Editing {
		e.mu.Unlock()
		return ErrNotEditing
	}
	update := ProfileUpdate{Name: e.form.Name, Phone: e.form.Phone, Image: image}
	e.mu.Unlock()

	user, err := e.backend.UpdateProfile(ctx, update)
	if err != nil {
		e.notifier.Error(errorMessage(err, "Failed to update profile"))
		return err
	}
	e.notifier.Success("Profile updated successfully!")

	if e.session != nil {
		if fresh, err := e.session.RefreshUser(ctx); err == nil {
			user = fresh
		}
	}

	e.mu.Lock()
	e.state = Viewing
	e.mu.Unlock()
	e.Refresh(user)
	return nil
}

func (e *ProfileEditor) LoadAddresses(ctx context.Context) error {
	list, err := e.backend.Addresses(ctx)
	if err != nil {
		e.notifier.Error("Failed to fetch addresses")
		return err
	}
	e.mu.Lock()
	e.addresses = slices.Clone(list)
	e.mu.Unlock()
	return nil
}

// AddAddress fills an empty email from the session user.
func (e *ProfileEditor) AddAddress(ctx context.Context, addr Address) error {
	if addr.Email == "" {
		e.mu.Lock()
		if e.last != nil {
			addr.Email = e.last.Email
		}
		e.mu.Unlock()
	}
	return e.mutateAddresses(ctx, func() (string, error) { return e.backend.AddAddress(ctx, addr) })
}

func (e *ProfileEditor) UpdateAddress(ctx context.Context, addr Address) error {
	return e.mutateAddresses(ctx, func() (string, error) { return e.backend.UpdateAddress(ctx, addr) })
}

func (e *ProfileEditor) DeleteAddress(ctx context.Context, id string) error {
	return e.mutateAddresses(ctx, func() (string, error) { return e.backend.DeleteAddress(ctx, id) })
}

func (e *ProfileEditor) mutateAddresses(ctx context.Context, call func() (string, error)) error {
	msg, err := call()
	if err != nil {
		e.notifier.Error(errorMessage(err, "Failed to update addresses"))
		return err
	}
	e.notifier.Success(msg)
	return e.LoadAddresses(ctx)
}

func formFor(u *User) ProfileForm {
	return ProfileForm{
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		ImageURL: u.ProfileImage,
	}
}
