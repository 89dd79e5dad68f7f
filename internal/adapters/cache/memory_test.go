package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Announcement(t *testing.T) {
	m := NewMemory(0)

	_, ok := m.GetAnnouncement()
	assert.False(t, ok, "empty cache should have no announcement")

	m.SetAnnouncement("seats are running out")
	got, ok := m.GetAnnouncement()
	require.True(t, ok)
	assert.Equal(t, "seats are running out", got)

	m.DeleteAnnouncement()
	_, ok = m.GetAnnouncement()
	assert.False(t, ok, "deleted announcement should be gone")
}

func TestMemory_AnnouncementTTL(t *testing.T) {
	m := NewMemory(10 * time.Millisecond)

	m.SetAnnouncement("short lived")
	_, ok := m.GetAnnouncement()
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = m.GetAnnouncement()
	assert.False(t, ok, "announcement should expire after the TTL")
}

func TestMemory_FeaturedSpeakerPersists(t *testing.T) {
	m := NewMemory(10 * time.Millisecond)

	m.SetFeaturedSpeaker("Rob is featured speaker")
	time.Sleep(20 * time.Millisecond)

	got, ok := m.GetFeaturedSpeaker()
	require.True(t, ok, "featured speaker slot never expires")
	assert.Equal(t, "Rob is featured speaker", got)

	m.SetFeaturedSpeaker("Ian is featured speaker")
	got, _ = m.GetFeaturedSpeaker()
	assert.Equal(t, "Ian is featured speaker", got)
}

func TestMemory_SlotsAreIndependent(t *testing.T) {
	m := NewMemory(0)

	m.SetAnnouncement("announcement")
	m.SetFeaturedSpeaker("featured")
	m.DeleteAnnouncement()

	_, ok := m.GetAnnouncement()
	assert.False(t, ok)
	got, ok := m.GetFeaturedSpeaker()
	require.True(t, ok)
	assert.Equal(t, "featured", got)
}
