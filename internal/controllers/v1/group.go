package v1

import (
	"net/http"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/auth"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/httputil"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/ledger"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterGroupRoutes registers the routes for groups.
func (co Controller) RegisterGroupRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetGroups)
	r.POST("", co.CreateGroup)

	r.OPTIONS("/:id", httputil.OptionsGetDelete)
	r.GET("/:id", co.GetGroup)
	r.DELETE("/:id", co.LeaveGroup)

	r.OPTIONS("/:id/members", httputil.OptionsPost)
	r.POST("/:id/members", co.AddGroupMember)

	r.OPTIONS("/:id/members/:userId", httputil.OptionsDelete)
	r.DELETE("/:id/members/:userId", co.RemoveGroupMember)

	r.OPTIONS("/:id/expenses", httputil.OptionsPost)
	r.POST("/:id/expenses", co.CreateGroupExpense)

	r.OPTIONS("/:id/expenses/:expenseId", httputil.OptionsDelete)
	r.DELETE("/:id/expenses/:expenseId", co.DeleteGroupExpense)

	r.OPTIONS("/:id/settlements", httputil.OptionsPost)
	r.POST("/:id/settlements", co.CreateSettlement)
}

// getGroupResource loads a group and verifies that the authenticated
// user is a member.
func getGroupResource(c *gin.Context) (models.Group, bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, GroupResponse{Error: &s})
		return models.Group{}, false
	}

	var group models.Group
	if err := models.DB.First(&group, uri.ID).Error; err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{Error: &s})
		return models.Group{}, false
	}

	member, err := group.IsMember(models.DB, auth.UserID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{Error: &s})
		return models.Group{}, false
	}

	if !member {
		s := ledger.ErrNotMember.Error()
		c.JSON(status(ledger.ErrNotMember), GroupResponse{Error: &s})
		return models.Group{}, false
	}

	return group, true
}

// GetGroups returns all groups the authenticated user is a member of.
//
//	@Summary		List groups
//	@Tags			Groups
//	@Produce		json
//	@Success		200	{object}	GroupListResponse
//	@Failure		401	{object}	GroupListResponse
//	@Failure		500	{object}	GroupListResponse
//	@Router			/v1/groups [get]
//	@Security		BearerAuth
func (co Controller) GetGroups(c *gin.Context) {
	groups, err := models.GroupsForUser(models.DB, auth.UserID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, GroupListResponse{Data: groups})
}

// CreateGroup creates a new group. The creator automatically becomes a
// member.
//
//	@Summary		Create group
//	@Tags			Groups
//	@Produce		json
//	@Success		201		{object}	GroupResponse
//	@Failure		400		{object}	GroupResponse
//	@Failure		401		{object}	GroupResponse
//	@Failure		500		{object}	GroupResponse
//	@Param			group	body		GroupEditable	true	"Group"
//	@Router			/v1/groups [post]
//	@Security		BearerAuth
func (co Controller) CreateGroup(c *gin.Context) {
	var editable GroupEditable
	if err := httputil.BindData(c, &editable); err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{Error: &s})
		return
	}

	group := models.Group{
		Name:        editable.Name,
		CreatedByID: auth.UserID(c),
	}

	if err := models.DB.Create(&group).Error; err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, GroupResponse{Data: &group})
}

// GetGroup returns a group with its members, their balances and the
// expense history. Balances are computed from the stored expenses on
// every read.
//
//	@Summary		Get group
//	@Tags			Groups
//	@Produce		json
//	@Success		200	{object}	GroupDetailResponse
//	@Failure		400	{object}	GroupDetailResponse
//	@Failure		401	{object}	GroupDetailResponse
//	@Failure		403	{object}	GroupDetailResponse
//	@Failure		404	{object}	GroupDetailResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/groups/{id} [get]
//	@Security		BearerAuth
func (co Controller) GetGroup(c *gin.Context) {
	group, ok := getGroupResource(c)
	if !ok {
		return
	}

	members, err := group.Members(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupDetailResponse{Error: &s})
		return
	}

	expenses, err := group.Expenses(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupDetailResponse{Error: &s})
		return
	}

	memberIDs, err := group.MemberIDs(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupDetailResponse{Error: &s})
		return
	}

	balances := ledger.Balances(memberIDs, expenses)
	memberBalances := make([]MemberBalance, 0, len(members))
	for _, member := range members {
		memberBalances = append(memberBalances, MemberBalance{
			User:    member,
			Balance: balances[member.ID].Round(2),
		})
	}

	c.JSON(http.StatusOK, GroupDetailResponse{Data: &GroupDetail{
		Group:    group,
		Members:  memberBalances,
		Expenses: expenses,
	}})
}

// LeaveGroup removes the authenticated user from a group. The creator
// leaving deletes the whole group with all its expenses.
//
//	@Summary		Leave group
//	@Description	Members can only leave with a settled balance. The creator leaving deletes the group.
//	@Tags			Groups
//	@Success		204
//	@Failure		400	{object}	GroupResponse
//	@Failure		401	{object}	GroupResponse
//	@Failure		403	{object}	GroupResponse
//	@Failure		404	{object}	GroupResponse
//	@Failure		409	{object}	GroupResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/groups/{id} [delete]
//	@Security		BearerAuth
func (co Controller) LeaveGroup(c *gin.Context) {
	group, ok := getGroupResource(c)
	if !ok {
		return
	}

	if err := ledger.Leave(models.DB, group, auth.UserID(c)); err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{Error: &s})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// AddGroupMember adds a user to a group by username.
//
//	@Summary		Add group member
//	@Tags			Groups
//	@Produce		json
//	@Success		204
//	@Failure		400		{object}	GroupResponse
//	@Failure		401		{object}	GroupResponse
//	@Failure		403		{object}	GroupResponse
//	@Failure		404		{object}	GroupResponse
//	@Param			id		path		URIID			true	"ID formatted as string"
//	@Param			member	body		MemberEditable	true	"Member"
//	@Router			/v1/groups/{id}/members [post]
//	@Security		BearerAuth
func (co Controller) AddGroupMember(c *gin.Context) {
	group, ok := getGroupResource(c)
	if !ok {
		return
	}

	var editable MemberEditable
	if err := httputil.BindData(c, &editable); err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{Error: &s})
		return
	}

	user, err := models.FindUserByUsername(models.DB, editable.Username)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{Error: &s})
		return
	}

	if err := group.AddMember(models.DB, user.ID); err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{Error: &s})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// RemoveGroupMember removes a member from a group. Only the creator may
// remove members, and only members with a settled balance can be removed.
//
//	@Summary		Remove group member
//	@Tags			Groups
//	@Success		204
//	@Failure		400		{object}	GroupResponse
//	@Failure		401		{object}	GroupResponse
//	@Failure		403		{object}	GroupResponse
//	@Failure		404		{object}	GroupResponse
//	@Failure		409		{object}	GroupResponse
//	@Param			id		path		string	true	"Group ID formatted as string"
//	@Param			userId	path		string	true	"User ID formatted as string"
//	@Router			/v1/groups/{id}/members/{userId} [delete]
//	@Security		BearerAuth
func (co Controller) RemoveGroupMember(c *gin.Context) {
	group, ok := getGroupResource(c)
	if !ok {
		return
	}

	var uri GroupMemberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, GroupResponse{Error: &s})
		return
	}

	if err := ledger.RemoveMember(models.DB, group, auth.UserID(c), uri.UserID.UUID); err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{Error: &s})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
