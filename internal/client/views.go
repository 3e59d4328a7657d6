package client

import (
	"fmt"
	"strings"
)

const loadingPlaceholder = "Loading..."

// ProfileListView renders the browsable developer directory: a loading
// placeholder while the fetch is in flight, an empty-state message when
// nothing came back, one line per profile otherwise.
type ProfileListView struct {
	store *Store
}

func NewProfileListView(store *Store) *ProfileListView {
	return &ProfileListView{store: store}
}

func (v *ProfileListView) Render() string {
	state := v.store.ProfileSlice()
	if state.Loading {
		return loadingPlaceholder
	}
	if len(state.Profiles) == 0 {
		return "No profiles found!"
	}

	var b strings.Builder
	b.WriteString("Developers\n")
	for _, p := range state.Profiles {
		fmt.Fprintf(&b, "- %s (%s)", p.User.Name, p.Status)
		if len(p.Skills) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(p.Skills, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// DashboardView renders the current user's dashboard: their profile with
// experience and education, or a prompt to create one.
type DashboardView struct {
	store *Store
}

func NewDashboardView(store *Store) *DashboardView {
	return &DashboardView{store: store}
}

func (v *DashboardView) Render() string {
	state := v.store.ProfileSlice()
	if state.Loading {
		return loadingPlaceholder
	}
	if state.Profile == nil {
		return "You have not yet set up a profile, please add some info"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dashboard - %s\n", state.Profile.User.Name)
	fmt.Fprintf(&b, "Status: %s\n", state.Profile.Status)

	if len(state.Profile.Experience) > 0 {
		b.WriteString("Experience:\n")
		for _, e := range state.Profile.Experience {
			fmt.Fprintf(&b, "- %s at %s\n", e.Title, e.Company)
		}
	}
	if len(state.Profile.Education) > 0 {
		b.WriteString("Education:\n")
		for _, e := range state.Profile.Education {
			fmt.Fprintf(&b, "- %s, %s\n", e.Degree, e.School)
		}
	}
	return b.String()
}
