package seed

import "github.com/forumhive/forum-api/internal/models"

func ptr(v int64) *int64 { return &v }

// DefaultDataset returns the built-in development dataset. Comment and vote
// references assume insertion into an empty database with sequential IDs.
func DefaultDataset() Dataset {
	return Dataset{
		Persons: []PersonRecord{
			{
				IsAdmin:        true,
				FirstName:      "Shalom",
				LastName:       "Handes",
				Email:          "shandes0@un.org",
				Gender:         models.GenderMale,
				Avatar:         "https://robohash.org/dolorumsintea.png?size=150x150&set=set1",
				Job:            "Compensation Analyst",
				Company:        "Edgetag",
				DateOfBirth:    "1978-04-15",
				CountryOfBirth: "Egypt",
			},
			{
				FirstName:      "Marietta",
				LastName:       "Incoll",
				Email:          "mincoll1@pagesperso-orange.fr",
				Gender:         models.GenderFemale,
				Avatar:         "https://robohash.org/temporautmagni.png?size=150x150&set=set1",
				Job:            "Programmer Analyst",
				Company:        "Skynoodle",
				DateOfBirth:    "1985-11-02",
				CountryOfBirth: "Indonesia",
			},
			{
				FirstName:      "Dorisa",
				LastName:       "Pennaman",
				Email:          "dpennaman2@diigo.com",
				Gender:         models.GenderFemale,
				Job:            "Accounting Assistant",
				Company:        "Yambee",
				DateOfBirth:    "1991-06-23",
				CountryOfBirth: "Philippines",
			},
			{
				FirstName:      "Claudius",
				LastName:       "Orteaux",
				Email:          "corteaux3@so-net.ne.jp",
				Gender:         models.GenderMale,
				Avatar:         "https://robohash.org/molestiaeetvoluptas.png?size=150x150&set=set1",
				Job:            "Web Developer",
				Company:        "Buzzshare",
				DateOfBirth:    "1969-01-30",
				CountryOfBirth: "France",
			},
			{
				FirstName:      "Rennie",
				LastName:       "Scimonelli",
				Email:          "rscimonelli4@hatena.ne.jp",
				Gender:         models.GenderOther,
				Job:            "Staff Scientist",
				Company:        "Topicstorm",
				DateOfBirth:    "2000-08-09",
				CountryOfBirth: "Brazil",
			},
		},
		Comments: []CommentRecord{
			{User: 1, Content: "What a wonderful day to ship something."},
			{User: 2, Content: "Anyone tried the new release yet?"},
			{User: 3, Parent: ptr(1), TopParent: ptr(1), Content: "Agreed, the weather helps too."},
			{User: 4, Parent: ptr(2), TopParent: ptr(2), Content: "Yes, the upgrade was painless."},
			{User: 1, Parent: ptr(3), TopParent: ptr(1), Content: "Glad to hear it."},
			{User: 5, Parent: ptr(4), TopParent: ptr(2), Content: "Same here, nothing broke."},
		},
		Votes: []VoteRecord{
			{User: 2, Comment: 1},
			{User: 3, Comment: 1},
			{User: 4, Comment: 1},
			{User: 1, Comment: 2},
			{User: 5, Comment: 2},
			{User: 2, Comment: 4},
		},
	}
}
