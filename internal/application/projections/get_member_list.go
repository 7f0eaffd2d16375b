package projections

import (
	"context"

	memberstore "gymadmin/internal/adapters/storage/member"
	"gymadmin/internal/application/listutil"
	"gymadmin/internal/domain/member"
)

// MemberListStore defines the member store interface for the member list projection.
type MemberListStore interface {
	List(ctx context.Context, filter memberstore.ListFilter) ([]member.Member, error)
	Count(ctx context.Context, filter memberstore.ListFilter) (int, error)
}

// MemberSortColumns are the columns the member list can be sorted by.
var MemberSortColumns = []string{"last_name", "join_date", "membership_type", "status"}

// MemberFilterKeys are the recognised member list filters.
var MemberFilterKeys = []string{"membership_type", "status"}

// MemberListResult carries one page of the member list.
type MemberListResult struct {
	Members  []member.Member
	PageInfo listutil.PageInfo
	Params   listutil.ListParams
}

// QueryGetMemberList returns a filtered, sorted page of members.
// PRE: params was parsed with listutil (sort column and dir already validated)
// POST: PageInfo reflects the filtered total, not the table total
func QueryGetMemberList(ctx context.Context, store MemberListStore, params listutil.ListParams) (MemberListResult, error) {
	filter := memberstore.ListFilter{
		MembershipType: params.Filters["membership_type"],
		Status:         params.Filters["status"],
		Search:         params.Search,
		Sort:           params.Sort,
		Dir:            params.Dir,
	}

	total, err := store.Count(ctx, filter)
	if err != nil {
		return MemberListResult{}, err
	}

	info := listutil.NewPageInfo(params.Page, params.PerPage, total)
	filter.Limit = info.PerPage
	filter.Offset = info.Offset()

	members, err := store.List(ctx, filter)
	if err != nil {
		return MemberListResult{}, err
	}

	return MemberListResult{Members: members, PageInfo: info, Params: params}, nil
}
