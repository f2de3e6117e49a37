package store

import (
	"time"

	"civicconnect-be/models"
)

// Seed data loaded on first run, when the snapshot backend has no blob for a
// store's key. The counters on seeded entities are part of the observable
// contract: mutations adjust them relative to these baselines.

func seedIssues() []*models.Issue {
	return []*models.Issue{
		{
			ID:          "1",
			Title:       "Large Pothole on Outer Ring Road",
			Description: "Deep pothole near Marathahalli junction causing vehicle damage and traffic congestion during peak hours",
			Status:      models.StatusPending,
			Urgency:     models.UrgencyHigh,
			Category:    "roads",
			Location:    "Outer Ring Road, Marathahalli",
			Coordinates: &models.Coordinates{Lat: 12.9591, Lng: 77.7017},
			ReportedBy:  "Rajesh Kumar",
			ReportedAt:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			AssignedDepartment: "BBMP Road Infrastructure",
			Upvotes:            23,
			Downvotes:          2,
			Tags:               []string{"Is it a pothole?"},
			Photos:             []string{"/street-pothole.png"},
			UserVotes:          map[string]models.VoteType{},
			Comments: []models.Comment{
				{
					ID:        "1",
					Author:    "Priya Sharma",
					Content:   "This pothole damaged my car's tire yesterday. Urgent repair needed!",
					Timestamp: time.Date(2024, 1, 15, 14, 20, 0, 0, time.UTC),
				},
				{
					ID:         "2",
					Author:     "BBMP Road Dept",
					Content:    "Issue registered. Inspection scheduled for January 18th. Temporary barricading will be done.",
					Timestamp:  time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC),
					IsOfficial: true,
				},
			},
		},
		{
			ID:          "2",
			Title:       "Street Light Not Working - Koramangala",
			Description: "Street light pole near BDA Complex has been non-functional for over a week, creating safety concerns",
			Status:      models.StatusInProgress,
			Urgency:     models.UrgencyMedium,
			Category:    "electricity",
			Location:    "5th Block, Koramangala",
			Coordinates: &models.Coordinates{Lat: 12.9352, Lng: 77.6245},
			ReportedBy:  "Anita Reddy",
			ReportedAt:  time.Date(2024, 1, 14, 14, 20, 0, 0, time.UTC),
			AssignedDepartment: "BESCOM",
			Upvotes:            15,
			Downvotes:          1,
			Tags:               []string{"Is it a street light issue?"},
			Photos:             []string{},
			UserVotes:          map[string]models.VoteType{},
			Comments: []models.Comment{
				{
					ID:         "3",
					Author:     "BESCOM Official",
					Content:    "Technician assigned. Repair work will be completed by January 19th.",
					Timestamp:  time.Date(2024, 1, 17, 11, 30, 0, 0, time.UTC),
					IsOfficial: true,
				},
			},
		},
		{
			ID:          "3",
			Title:       "Garbage Overflow at HSR Layout",
			Description: "Garbage bins overflowing for 10 days, attracting stray animals and creating unhygienic conditions",
			Status:      models.StatusResolved,
			Urgency:     models.UrgencyHigh,
			Category:    "sanitation",
			Location:    "Sector 2, HSR Layout",
			Coordinates: &models.Coordinates{Lat: 12.9116, Lng: 77.6473},
			ReportedBy:  "Vikram Singh",
			ReportedAt:  time.Date(2024, 1, 10, 9, 15, 0, 0, time.UTC),
			AssignedDepartment: "BBMP Solid Waste Management",
			Upvotes:            31,
			Downvotes:          0,
			Tags:               []string{"Is it garbage collection?"},
			Photos:             []string{},
			UserVotes:          map[string]models.VoteType{},
			Comments: []models.Comment{
				{
					ID:         "4",
					Author:     "BBMP SWM",
					Content:    "Garbage cleared and additional bins installed. Regular collection schedule restored.",
					Timestamp:  time.Date(2024, 1, 16, 16, 0, 0, 0, time.UTC),
					IsOfficial: true,
				},
			},
		},
		{
			ID:          "4",
			Title:       "Water Leakage in Indiranagar",
			Description: "Major water pipe burst near Metro Station causing road flooding and water wastage",
			Status:      models.StatusInProgress,
			Urgency:     models.UrgencyHigh,
			Category:    "water",
			Location:    "100 Feet Road, Indiranagar",
			Coordinates: &models.Coordinates{Lat: 12.9716, Lng: 77.6412},
			ReportedBy:  "Meera Nair",
			ReportedAt:  time.Date(2024, 1, 16, 7, 45, 0, 0, time.UTC),
			AssignedDepartment: "BWSSB",
			Upvotes:            18,
			Downvotes:          0,
			Tags:               []string{"Is it water supply?"},
			Photos:             []string{},
			UserVotes:          map[string]models.VoteType{},
			Comments:           []models.Comment{},
		},
		{
			ID:          "5",
			Title:       "Traffic Signal Malfunction - Silk Board",
			Description: "Traffic lights not working properly causing major traffic jams during office hours",
			Status:      models.StatusPending,
			Urgency:     models.UrgencyHigh,
			Category:    "traffic",
			Location:    "Silk Board Junction",
			Coordinates: &models.Coordinates{Lat: 12.9165, Lng: 77.6223},
			ReportedBy:  "Arjun Patel",
			ReportedAt:  time.Date(2024, 1, 17, 8, 30, 0, 0, time.UTC),
			AssignedDepartment: "Bangalore Traffic Police",
			Upvotes:            42,
			Downvotes:          1,
			Tags:               []string{"Is it traffic management?"},
			Photos:             []string{},
			UserVotes:          map[string]models.VoteType{},
			Comments: []models.Comment{
				{
					ID:        "5",
					Author:    "Commuter123",
					Content:   "Stuck in traffic for 45 minutes because of this. Please fix urgently!",
					Timestamp: time.Date(2024, 1, 17, 9, 15, 0, 0, time.UTC),
				},
			},
		},
		{
			ID:          "6",
			Title:       "Broken Footpath - Brigade Road",
			Description: "Damaged footpath tiles creating tripping hazards for pedestrians, especially elderly citizens",
			Status:      models.StatusPending,
			Urgency:     models.UrgencyMedium,
			Category:    "roads",
			Location:    "Brigade Road, Near Commercial Street",
			Coordinates: &models.Coordinates{Lat: 12.9716, Lng: 77.6103},
			ReportedBy:  "Sunita Joshi",
			ReportedAt:  time.Date(2024, 1, 16, 15, 20, 0, 0, time.UTC),
			AssignedDepartment: "BBMP Infrastructure",
			Upvotes:            12,
			Downvotes:          0,
			Tags:               []string{"Is it footpath?"},
			Photos:             []string{},
			UserVotes:          map[string]models.VoteType{},
			Comments:           []models.Comment{},
		},
		{
			ID:          "7",
			Title:       "Stray Dog Menace in Jayanagar",
			Description: "Pack of aggressive stray dogs in 4th Block area posing threat to morning walkers and children",
			Status:      models.StatusPending,
			Urgency:     models.UrgencyMedium,
			Category:    "public-safety",
			Location:    "4th Block, Jayanagar",
			Coordinates: &models.Coordinates{Lat: 12.9279, Lng: 77.5937},
			ReportedBy:  "Ramesh Gupta",
			ReportedAt:  time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC),
			AssignedDepartment: "BBMP Animal Husbandry",
			Upvotes:            8,
			Downvotes:          3,
			Tags:               []string{"Is it animal control?"},
			Photos:             []string{},
			UserVotes:          map[string]models.VoteType{},
			Comments:           []models.Comment{},
		},
		{
			ID:          "8",
			Title:       "Illegal Parking on Residency Road",
			Description: "Vehicles parked on both sides of road blocking traffic flow and emergency vehicle access",
			Status:      models.StatusResolved,
			Urgency:     models.UrgencyMedium,
			Category:    "traffic",
			Location:    "Residency Road, Near UB City Mall",
			Coordinates: &models.Coordinates{Lat: 12.9716, Lng: 77.6197},
			ReportedBy:  "Kavya Krishnan",
			ReportedAt:  time.Date(2024, 1, 12, 11, 0, 0, 0, time.UTC),
			AssignedDepartment: "Bangalore Traffic Police",
			Upvotes:            25,
			Downvotes:          5,
			Tags:               []string{"Is it illegal parking?"},
			Photos:             []string{},
			UserVotes:          map[string]models.VoteType{},
			Comments: []models.Comment{
				{
					ID:         "6",
					Author:     "Traffic Police",
					Content:    "Regular patrolling increased in this area. Towing operations conducted.",
					Timestamp:  time.Date(2024, 1, 16, 14, 0, 0, 0, time.UTC),
					IsOfficial: true,
				},
			},
		},
	}
}

func seedCommunities() []*models.Community {
	communities := []*models.Community{
		{
			ID:           "1",
			Title:        "Road Safety Initiatives",
			Description:  "Discuss road safety measures and traffic improvements",
			Category:     "roads",
			Region:       "all",
			Members:      []string{"user1", "user2", "user3"},
			MemberCount:  156,
			Posts:        []models.Discussion{},
			LastActivity: time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC),
			Trending:     true,
			Moderator:    "Admin Team",
			CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Rules: []string{
				"Be respectful to all members",
				"Stay on topic",
				"No spam or promotional content",
				"Report unsafe road conditions responsibly",
			},
			Tags:         []string{"safety", "roads", "traffic"},
			IsPrivate:    false,
			JoinRequests: []string{},
		},
		{
			ID:           "2",
			Title:        "Koramangala Development",
			Description:  "Local development discussions for Koramangala residents",
			Category:     "development",
			Region:       "koramangala",
			Members:      []string{"user1", "user4", "user5"},
			MemberCount:  89,
			Posts:        []models.Discussion{},
			LastActivity: time.Date(2024, 1, 17, 11, 0, 0, 0, time.UTC),
			Trending:     false,
			Moderator:    "Local Council",
			CreatedAt:    time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Rules: []string{
				"Must be a Koramangala resident",
				"Discuss local issues only",
				"Provide constructive feedback",
			},
			Tags:         []string{"koramangala", "development", "local"},
			IsPrivate:    false,
			JoinRequests: []string{},
		},
		{
			ID:           "3",
			Title:        "Water Conservation",
			Description:  "Share ideas and initiatives for water conservation",
			Category:     "water",
			Region:       "all",
			Members:      []string{"user2", "user3", "user6"},
			MemberCount:  234,
			Posts:        []models.Discussion{},
			LastActivity: time.Date(2024, 1, 17, 11, 30, 0, 0, time.UTC),
			Trending:     true,
			Moderator:    "Environmental Team",
			CreatedAt:    time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			Rules: []string{
				"Share practical conservation tips",
				"Support evidence-based solutions",
				"Encourage community participation",
			},
			Tags:         []string{"water", "conservation", "environment"},
			IsPrivate:    false,
			JoinRequests: []string{},
		},
		{
			ID:           "4",
			Title:        "Indiranagar Community",
			Description:  "Connect with your Indiranagar neighbors",
			Category:     "community",
			Region:       "indiranagar",
			Members:      []string{"user3", "user7", "user8"},
			MemberCount:  178,
			Posts:        []models.Discussion{},
			LastActivity: time.Date(2024, 1, 17, 11, 45, 0, 0, time.UTC),
			Trending:     false,
			Moderator:    "Residents Association",
			CreatedAt:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Rules: []string{
				"Residents and workers in Indiranagar welcome",
				"Help build a stronger community",
				"Share local events and news",
			},
			Tags:         []string{"indiranagar", "community", "neighbors"},
			IsPrivate:    false,
			JoinRequests: []string{},
		},
	}

	// Attach the seeded discussions to their owning communities and set
	// postCount from the attached posts.
	for _, discussion := range seedDiscussions() {
		for _, community := range communities {
			if community.ID == discussion.CommunityID {
				community.Posts = append(community.Posts, discussion)
				community.PostCount = len(community.Posts)
			}
		}
	}
	return communities
}

func seedDiscussions() []models.Discussion {
	return []models.Discussion{
		{
			ID:          "1",
			CommunityID: "1",
			Title:       "New Speed Bumps on MG Road - Thoughts?",
			Content:     "The city has installed new speed bumps on MG Road. What are your thoughts on their effectiveness?",
			Author:      "Priya Sharma",
			AuthorID:    "user1",
			CreatedAt:   time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC),
			Replies:     []models.Reply{},
			ReplyCount:  12,
			Likes:       []string{"user2", "user3"},
			LikeCount:   8,
			Views:       []string{"user1", "user2", "user3", "user4"},
			ViewCount:   45,
			Tags:        []string{"traffic", "mg-road", "safety"},
			IsPinned:    false,
			IsLocked:    false,
		},
		{
			ID:          "2",
			CommunityID: "2",
			Title:       "Community Garden Proposal",
			Content:     "I'd like to propose creating a community garden in the empty lot near Forum Mall. Who's interested?",
			Author:      "Rajesh Kumar",
			AuthorID:    "user4",
			CreatedAt:   time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC),
			Replies:     []models.Reply{},
			ReplyCount:  18,
			Likes:       []string{"user1", "user5", "user6"},
			LikeCount:   15,
			Views:       []string{"user1", "user4", "user5", "user6", "user7"},
			ViewCount:   67,
			Tags:        []string{"community", "garden", "koramangala"},
			IsPinned:    true,
			IsLocked:    false,
		},
		{
			ID:          "3",
			CommunityID: "3",
			Title:       "Rainwater Harvesting Success Story",
			Content:     "Our apartment complex successfully implemented rainwater harvesting. Here's what we learned...",
			Author:      "Meera Nair",
			AuthorID:    "user2",
			CreatedAt:   time.Date(2024, 1, 17, 10, 30, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 17, 10, 30, 0, 0, time.UTC),
			Replies:     []models.Reply{},
			ReplyCount:  6,
			Likes:       []string{"user3", "user6", "user8"},
			LikeCount:   22,
			Views:       []string{"user2", "user3", "user6", "user8", "user9"},
			ViewCount:   89,
			Tags:        []string{"water", "harvesting", "apartment"},
			IsPinned:    false,
			IsLocked:    false,
		},
	}
}

// seedUserMemberships is the default session user's starting memberships.
func seedUserMemberships() []string {
	return []string{"1", "3"}
}
