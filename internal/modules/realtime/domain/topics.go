package domain

import "strings"

const (
	SystemEntity = "system"
	FloorEntity  = "floor"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionView      = "view"
	ActionFeedback  = "feedback"
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
)

// FloorTopic returns the broadcast topic for one restaurant section's floor.
func FloorTopic(restaurantID, sectionID string) string {
	rid := strings.TrimSpace(restaurantID)
	sid := strings.TrimSpace(sectionID)
	if rid == "" || sid == "" {
		return ""
	}
	return FloorEntity + "." + rid + "." + sid
}

// FloorViewTopic is the topic carrying full floor view snapshots for a section.
func FloorViewTopic(restaurantID, sectionID string) string {
	return suffixed(FloorTopic(restaurantID, sectionID), ActionView)
}

// FloorFeedbackTopic carries drag feedback events for a section.
func FloorFeedbackTopic(restaurantID, sectionID string) string {
	return suffixed(FloorTopic(restaurantID, sectionID), ActionFeedback)
}

func suffixed(topic, action string) string {
	if topic == "" {
		return ""
	}
	return topic + "." + action
}
