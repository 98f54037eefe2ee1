package user

// Fields are pointers so an absent field can be told apart from an empty one.
type (
	CreateRequest struct {
		Name    *string `json:"name" form:"name"`
		Surname *string `json:"surname" form:"surname"`
	}
	EditRequest struct {
		NewName    *string `json:"newName" form:"newName"`
		NewSurname *string `json:"newSurname" form:"newSurname"`
	}
)
