package models

// AdminStats is the platform-wide aggregate snapshot served to admins.
// ActiveUsersToday counts users whose last login falls on the current UTC day.
type AdminStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalPosts       int64 `json:"total_posts"`
	TotalComments    int64 `json:"total_comments"`
	TotalLikes       int64 `json:"total_likes"`
	ActiveUsersToday int64 `json:"active_users_today"`
}
