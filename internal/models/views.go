package models

// UserView is the external representation of a User. It has no credential field.
type UserView struct {
	ID       string       `json:"id"`
	Username string       `json:"username"`
	ImageURL string       `json:"image_url"`
	Bio      string       `json:"bio"`
	Recipes  []RecipeView `json:"recipes"`
}

// OwnerView is a User as seen from one of its recipes: no recipe list.
type OwnerView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
	Bio      string `json:"bio"`
}

// RecipeView is the external representation of a Recipe.
type RecipeView struct {
	ID                string     `json:"id"`
	Title             *string    `json:"title"`
	Instructions      string     `json:"instructions"`
	MinutesToComplete *int       `json:"minutes_to_complete"`
	UserID            string     `json:"user_id"`
	User              *OwnerView `json:"user,omitempty"`
}

// View renders u with its loaded recipes. Nested recipes carry no owner.
func (u *User) View() UserView {
	recipes := make([]RecipeView, 0, len(u.Recipes))
	for i := range u.Recipes {
		rv := u.Recipes[i].View(nil)
		rv.User = nil
		recipes = append(recipes, rv)
	}
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		ImageURL: u.ImageURL,
		Bio:      u.Bio,
		Recipes:  recipes,
	}
}

// OwnerView renders u without its recipes.
func (u *User) OwnerView() *OwnerView {
	return &OwnerView{
		ID:       u.ID,
		Username: u.Username,
		ImageURL: u.ImageURL,
		Bio:      u.Bio,
	}
}

// View renders r. When owner is nil the preloaded User, if any, is used.
func (r *Recipe) View(owner *User) RecipeView {
	v := RecipeView{
		ID:                r.ID,
		Title:             r.Title,
		Instructions:      r.Instructions,
		MinutesToComplete: r.MinutesToComplete,
		UserID:            r.UserID,
	}
	if owner == nil {
		owner = r.User
	}
	if owner != nil {
		v.User = owner.OwnerView()
	}
	return v
}
