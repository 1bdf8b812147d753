package workspaces_repositories

var workspaceRepository = &WorkspaceRepository{}
var membershipRepository = &MembershipRepository{}

func GetWorkspaceRepository() *WorkspaceRepository {
	return workspaceRepository
}

func GetMembershipRepository() *MembershipRepository {
	return membershipRepository
}
