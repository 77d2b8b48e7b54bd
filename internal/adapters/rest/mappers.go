package rest

import (
	"github.com/philly/learnhub/backend/internal/adapters/api"
	contributorsApp "github.com/philly/learnhub/backend/internal/contributors/application"
	contributorsDomain "github.com/philly/learnhub/backend/internal/contributors/domain"
	contributorsPorts "github.com/philly/learnhub/backend/internal/contributors/ports"
	identityDomain "github.com/philly/learnhub/backend/internal/identity/domain"
	likesApp "github.com/philly/learnhub/backend/internal/likes/application"
	resourcesApp "github.com/philly/learnhub/backend/internal/resources/application"
	resourcesDomain "github.com/philly/learnhub/backend/internal/resources/domain"
)

func resourceToAPI(v *resourcesApp.View) api.Resource {
	return api.Resource{
		Id:              v.ID,
		LearningId:      v.LearningID,
		Link:            v.Link,
		Title:           v.Title,
		FormatCategory:  string(v.FormatCategory),
		SubCategory:     string(v.SubCategory),
		Description:     v.Description,
		ContributorId:   v.ContributorID,
		ContributorName: v.ContributorName,
		CreatedAt:       v.CreatedAt,
		ModifiedAt:      v.ModifiedAt,
		Likes:           v.Likes,
		LikedByMe:       v.LikedByMe,
	}
}

func resourcesToAPI(views []*resourcesApp.View) []api.Resource {
	out := make([]api.Resource, 0, len(views))
	for _, v := range views {
		out = append(out, resourceToAPI(v))
	}
	return out
}

func resourcePageToAPI(p *resourcesDomain.Page[*resourcesApp.View]) api.ResourcePage {
	return api.ResourcePage{
		Content:       resourcesToAPI(p.Content),
		Page:          p.Page,
		Limit:         p.Limit,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		HasNext:       p.HasNext,
		HasPrevious:   p.HasPrevious,
	}
}

func contributorToAPI(c *contributorsDomain.Contributor) api.Contributor {
	return api.Contributor{
		Id:            c.ID,
		DisplayName:   c.DisplayName(),
		GithubProfile: c.GithubProfile,
		ScreenName:    c.ScreenName,
		Contributions: c.Contributions,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func contributorsToAPI(cs []*contributorsDomain.Contributor) []api.Contributor {
	out := make([]api.Contributor, 0, len(cs))
	for _, c := range cs {
		out = append(out, contributorToAPI(c))
	}
	return out
}

func profileToAPI(p *contributorsApp.Profile) api.ContributorProfile {
	return api.ContributorProfile{
		Contributor: contributorToAPI(p.Contributor),
		Resources:   ownedToAPI(p.Resources),
	}
}

func ownedToAPI(owned []contributorsPorts.OwnedResource) []api.OwnedResource {
	out := make([]api.OwnedResource, 0, len(owned))
	for _, o := range owned {
		out = append(out, api.OwnedResource{
			Id:             o.ID,
			LearningId:     o.LearningID,
			Title:          o.Title,
			Link:           o.Link,
			FormatCategory: o.FormatCategory,
			SubCategory:    o.SubCategory,
			CreatedAt:      o.CreatedAt,
		})
	}
	return out
}

func directoryToAPI(d *contributorsApp.Directory) api.ContributorDirectory {
	return api.ContributorDirectory{
		Github:     contributorsToAPI(d.Github),
		ScreenName: contributorsToAPI(d.Screen),
	}
}

func identityToAPI(i *identityDomain.Identity) api.Identity {
	return api.Identity{
		Username:  i.Username,
		Roles:     i.Roles.Strings(),
		CreatedAt: i.CreatedAt,
	}
}

func likeSummaryToAPI(s *likesApp.Summary) api.LikeSummary {
	return api.LikeSummary{
		ResourceId: s.ResourceID,
		Likes:      s.Count,
		LikedByMe:  s.LikedByMe,
	}
}
