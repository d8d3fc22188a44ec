package request

// ByIDRequest binds the ":id" path parameter shared by the booking and
// resource endpoints and rejects anything that is not a UUID.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
