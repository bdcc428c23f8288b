package fetchjd

// Selector lists for each extracted field, in priority order. The target
// markup drifts between page variants and over time, so keeping these as
// data means selector drift is a config change, not a code change.

var descriptionSelectors = []string{
	".description__text",
	".show-more-less-html__markup",
	".jobs-description-content__text",
	".jobs-box__html-content",
	"[data-testid='job-details']",
	".jobs-description__container",
}

var titleSelectors = []string{
	".top-card-layout__title",
	".jobs-unified-top-card__job-title",
	"h1.t-24",
}

var companySelectors = []string{
	".top-card-layout__card .top-card-layout__second-subline a",
	".jobs-unified-top-card__company-name",
	".top-card-layout__card .top-card-layout__second-subline",
}

var locationSelectors = []string{
	".top-card-layout__card .top-card-layout__third-subline",
	".jobs-unified-top-card__bullet",
}
