package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMembershipChecker struct {
	members map[uuid.UUID][]uuid.UUID
}

func (f *fakeMembershipChecker) IsWorkspaceMember(
	workspaceID uuid.UUID,
	userID uuid.UUID,
) (bool, error) {
	for _, id := range f.members[workspaceID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func receiveEvent(t *testing.T, client *Client) *envelope {
	t.Helper()

	select {
	case data := <-client.send:
		var event envelope
		require.NoError(t, json.Unmarshal(data, &event))
		return &event
	case <-time.After(time.Second):
		t.Fatal("expected an event but received none")
		return nil
	}
}

func assertNoEvent(t *testing.T, client *Client) {
	t.Helper()

	select {
	case data := <-client.send:
		t.Fatalf("expected no event but received: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func Test_Hub_ClientJoinsOwnUserRoomOnConnect(t *testing.T) {
	hub := NewHub(&fakeMembershipChecker{})
	go hub.Run()

	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.register <- client

	hub.BroadcastToUser(userID, EventNotification, map[string]string{"message": "hello"})

	event := receiveEvent(t, client)
	assert.Equal(t, EventNotification, event.Event)
}

func Test_Hub_WorkspaceBroadcastReachesOnlyRoomSubscribers(t *testing.T) {
	workspaceID := uuid.New()
	memberID := uuid.New()
	outsiderID := uuid.New()

	hub := NewHub(&fakeMembershipChecker{
		members: map[uuid.UUID][]uuid.UUID{workspaceID: {memberID}},
	})
	go hub.Run()

	member := NewClient(hub, nil, memberID)
	outsider := NewClient(hub, nil, outsiderID)
	hub.register <- member
	hub.register <- outsider

	hub.JoinWorkspaceRoom(member, workspaceID)
	hub.BroadcastToWorkspace(workspaceID, EventTaskCreated, map[string]string{"title": "Ship it"})

	event := receiveEvent(t, member)
	assert.Equal(t, EventTaskCreated, event.Event)
	assertNoEvent(t, outsider)
}

func Test_Hub_NonMemberCannotJoinWorkspaceRoom(t *testing.T) {
	workspaceID := uuid.New()

	hub := NewHub(&fakeMembershipChecker{})
	go hub.Run()

	client := NewClient(hub, nil, uuid.New())
	hub.register <- client

	hub.JoinWorkspaceRoom(client, workspaceID)
	hub.BroadcastToWorkspace(workspaceID, EventTaskUpdated, map[string]string{"title": "Secret"})

	assertNoEvent(t, client)
}

func Test_Hub_LeaveWorkspaceRoomStopsDelivery(t *testing.T) {
	workspaceID := uuid.New()
	memberID := uuid.New()

	hub := NewHub(&fakeMembershipChecker{
		members: map[uuid.UUID][]uuid.UUID{workspaceID: {memberID}},
	})
	go hub.Run()

	client := NewClient(hub, nil, memberID)
	hub.register <- client

	hub.JoinWorkspaceRoom(client, workspaceID)
	hub.BroadcastToWorkspace(workspaceID, EventTaskCreated, nil)
	receiveEvent(t, client)

	hub.LeaveWorkspaceRoom(client, workspaceID)
	hub.BroadcastToWorkspace(workspaceID, EventTaskDeleted, nil)
	assertNoEvent(t, client)
}
