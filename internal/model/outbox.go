package model

const (
	TopicMentorRequestCreated = "club.mentor_request.created"
	TopicProfileUpdated       = "club.profile.updated"
)
