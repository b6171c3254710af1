package repository

type Repositories struct {
	Users    Users
	Posts    Posts
	Activity Activity
}
