package resource

import (
	"fmt"
	"strings"

	"travel-admin/internal/upstream"
	"travel-admin/internal/validation"
)

const residenceTypes = "required,oneof=HOTEL HOSTEL GUESTHOUSE APARTMENT VILLA"

var registry = map[Kind]Definition{}

func register(d Definition) {
	registry[d.Kind] = d
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// titled registers a kind whose only field is a title, e.g. TripActivity.
func titled(kind Kind, typeName string) {
	member := lowerFirst(typeName)
	register(Definition{
		Kind:  kind,
		Rules: []validation.Rule{{Field: "title", Tag: validation.TagTitle}},
		list: upstream.MustParse(fmt.Sprintf(
			`query List%[1]s($first: Int = 100) { %[2]s(first: $first) { edges { node { id title } } } }`,
			typeName, kind)),
		create: upstream.MustParse(fmt.Sprintf(
			`mutation Create%[1]s($title: String!) { create%[1]s(title: $title) { %[2]s { id title } } }`,
			typeName, member)),
		edit: upstream.MustParse(fmt.Sprintf(
			`mutation Edit%[1]s($id: ID!, $title: String!) { edit%[1]s(id: $id, title: $title) { %[2]s { id title } } }`,
			typeName, member)),
		remove: upstream.MustParse(fmt.Sprintf(
			`mutation Delete%[1]s($id: ID!) { delete%[1]s(id: $id) { %[2]sId } }`,
			typeName, member)),
	})
}

func init() {
	titled(Destinations, "Destination")
	titled(TripConditions, "TripCondition")
	titled(TripActivities, "TripActivity")
	titled(TripExclusions, "TripExclusion")
	titled(TripImportantInfos, "TripImportantInfo")

	register(Definition{
		Kind: SubDestinations,
		Rules: []validation.Rule{
			{Field: "title", Tag: validation.TagTitle},
			{Field: "destinationId", Tag: validation.TagID},
		},
		list: upstream.MustParse(`
query ListSubDestinations($first: Int = 100) {
  subDestinations(first: $first) { edges { node { id title destination { id title } } } }
}`),
		create: upstream.MustParse(`
mutation CreateSubDestination($title: String!, $destinationId: ID!) {
  createSubDestination(title: $title, destinationId: $destinationId) {
    subDestination { id title destination { id title } }
  }
}`),
		edit: upstream.MustParse(`
mutation EditSubDestination($id: ID!, $title: String!, $destinationId: ID!) {
  editSubDestination(id: $id, title: $title, destinationId: $destinationId) {
    subDestination { id title destination { id title } }
  }
}`),
		remove: upstream.MustParse(`
mutation DeleteSubDestination($id: ID!) { deleteSubDestination(id: $id) { subDestinationId } }`),
	})

	register(Definition{
		Kind: Residences,
		Rules: []validation.Rule{
			{Field: "title", Tag: validation.TagTitle},
			{Field: "location", Tag: validation.TagLabel},
			{Field: "type", Tag: residenceTypes},
			{Field: "thumbnailBase64", Tag: validation.TagOptImage},
		},
		list: upstream.MustParse(`
query ListResidences($first: Int = 100) {
  residences(first: $first) { edges { node { id title location type thumbnail } } }
}`),
		create: upstream.MustParse(`
mutation CreateResidence($title: String!, $location: String!, $type: ResidenceTypeEnum!, $thumbnailBase64: String) {
  createResidence(title: $title, location: $location, type: $type, thumbnailBase64: $thumbnailBase64) {
    residence { id title location type thumbnail }
  }
}`),
		edit: upstream.MustParse(`
mutation EditResidence($id: ID!, $title: String, $location: String, $type: ResidenceTypeEnum, $thumbnailBase64: String) {
  editResidence(id: $id, title: $title, location: $location, type: $type, thumbnailBase64: $thumbnailBase64) {
    residence { id title location type thumbnail }
  }
}`),
		remove: upstream.MustParse(`
mutation DeleteResidence($id: ID!) { deleteResidence(id: $id) { residenceId } }`),
	})

	register(Definition{
		Kind: GalleryImages,
		Rules: []validation.Rule{
			{Field: "title", Tag: validation.TagOptLabel},
			{Field: "pictureBase64", Tag: validation.TagImage},
			{Field: "tags", Each: validation.TagLabel},
		},
		list: upstream.MustParse(`
query ListGalleryImages($first: Int = 100) {
  galleryImages(first: $first) {
    edges { node { id title picture tags { edges { node { id name } } } } }
  }
}`),
		create: upstream.MustParse(`
mutation CreateGalleryImage($title: String, $pictureBase64: String!, $tags: [String!]) {
  createGalleryImage(title: $title, pictureBase64: $pictureBase64, tags: $tags) {
    gallery { id title picture }
  }
}`),
		edit: upstream.MustParse(`
mutation EditGalleryImage($id: ID!, $title: String, $pictureBase64: String, $tags: [String!]) {
  editGalleryImage(id: $id, title: $title, pictureBase64: $pictureBase64, tags: $tags) {
    gallery { id title picture }
  }
}`),
		remove: upstream.MustParse(`
mutation DeleteGalleryImage($id: ID!) { deleteGalleryImage(id: $id) { galleryId } }`),
	})

	register(Definition{
		Kind: CommonQuestions,
		Rules: []validation.Rule{
			{Field: "question", Tag: validation.TagQuestion},
			{Field: "answer", Tag: validation.TagDescription},
		},
		list: upstream.MustParse(`
query ListCommonQuestions($first: Int = 100) {
  commonQuestions(first: $first) { edges { node { id question answer } } }
}`),
		create: upstream.MustParse(`
mutation CreateCommonQuestion($question: String!, $answer: String!) {
  createCommonQuestion(question: $question, answer: $answer) { commonQuestion { id question answer } }
}`),
		edit: upstream.MustParse(`
mutation EditCommonQuestion($id: ID!, $question: String, $answer: String) {
  editCommonQuestion(id: $id, question: $question, answer: $answer) { commonQuestion { id question answer } }
}`),
		remove: upstream.MustParse(`
mutation DeleteCommonQuestion($id: ID!) { deleteCommonQuestion(id: $id) { commonQuestionId } }`),
	})

	register(Definition{
		Kind: VisitLocationHighlights,
		Rules: []validation.Rule{
			{Field: "title", Tag: validation.TagTitle},
			{Field: "thumbnailBase64", Tag: validation.TagImage},
			{Field: "tags", Each: validation.TagLabel},
		},
		list: upstream.MustParse(`
query ListVisitLocationHighlights($first: Int = 100) {
  visitLocationHighlights(first: $first) { edges { node { id title thumbnail } } }
}`),
		create: upstream.MustParse(`
mutation CreateVisitLocationHighlight($title: String!, $thumbnailBase64: String!, $tags: [String!]) {
  createVisitLocationHighlight(title: $title, thumbnailBase64: $thumbnailBase64, tags: $tags) {
    visitLocationHighlight { id title }
  }
}`),
		edit: upstream.MustParse(`
mutation EditVisitLocationHighlight($id: ID!, $title: String, $thumbnailBase64: String, $tags: [String!]) {
  editVisitLocationHighlight(id: $id, title: $title, thumbnailBase64: $thumbnailBase64, tags: $tags) {
    visitLocationHighlight { id title }
  }
}`),
		remove: upstream.MustParse(`
mutation DeleteVisitLocationHighlight($id: ID!) {
  deleteVisitLocationHighlight(id: $id) { visitLocationHighlightId }
}`),
	})

	register(Definition{
		Kind: TripContents,
		Rules: []validation.Rule{
			{Field: "title", Tag: validation.TagTitle},
			{Field: "description", Tag: validation.TagDescription},
			{Field: "iconBase64", Tag: validation.TagOptImage},
		},
		list: upstream.MustParse(`
query ListTripContents($first: Int = 100) {
  tripContents(first: $first) { edges { node { id title description icon } } }
}`),
		create: upstream.MustParse(`
mutation CreateTripContent($title: String!, $description: String!, $iconBase64: String) {
  createTripContent(title: $title, description: $description, iconBase64: $iconBase64) {
    tripContent { id title description icon }
  }
}`),
		edit: upstream.MustParse(`
mutation EditTripContent($id: ID!, $title: String, $description: String, $iconBase64: String) {
  editTripContent(id: $id, title: $title, description: $description, iconBase64: $iconBase64) {
    tripContent { id title description icon }
  }
}`),
		remove: upstream.MustParse(`
mutation DeleteTripContent($id: ID!) { deleteTripContent(id: $id) { tripContentId } }`),
	})

	register(Definition{
		Kind: UnavailabilityDates,
		Rules: []validation.Rule{
			{Field: "startDate", Tag: validation.TagDate},
			{Field: "endDate", Tag: validation.TagDate, NotBefore: "startDate"},
		},
		list: upstream.MustParse(`
query ListUnavailabilityDates {
  unavailabilityDates { edges { node { id startDate endDate } } }
}`),
		create: upstream.MustParse(`
mutation CreateUnavailabilityDate($startDate: Date!, $endDate: Date!) {
  createUnavailabilityDate(startDate: $startDate, endDate: $endDate) {
    unavailabilityDate { id startDate endDate }
  }
}`),
		edit: upstream.MustParse(`
mutation EditUnavailabilityDate($id: ID!, $startDate: Date, $endDate: Date) {
  editUnavailabilityDate(id: $id, startDate: $startDate, endDate: $endDate) {
    unavailabilityDate { id startDate endDate }
  }
}`),
		remove: upstream.MustParse(`
mutation DeleteUnavailabilityDate($id: ID!) { deleteUnavailabilityDate(id: $id) { unavailabilityDateId } }`),
	})

	register(Definition{
		Kind: TripPackages,
		Rules: []validation.Rule{
			{Field: "tripId", Tag: validation.TagID},
			{Field: "price", Tag: validation.TagPrice},
			{Field: "groupSize", Tag: "required,group_size"},
			{Field: "startDate", Tag: validation.TagDate},
			{Field: "endDate", Tag: validation.TagDate, NotBefore: "startDate"},
		},
		list: upstream.MustParse(`
query ListTripPackages { tripPackages { id price groupSize startDate endDate } }`),
		create: upstream.MustParse(`
mutation CreateTripPackage($tripId: ID!, $price: String!, $groupSize: String!, $startDate: String!, $endDate: String!) {
  createTripPackage(tripId: $tripId, price: $price, groupSize: $groupSize, startDate: $startDate, endDate: $endDate) {
    tripPackage { id price groupSize }
  }
}`),
		edit: upstream.MustParse(`
mutation EditTripPackage($id: ID!, $price: String, $groupSize: String, $startDate: String, $endDate: String) {
  editTripPackage(id: $id, price: $price, groupSize: $groupSize, startDate: $startDate, endDate: $endDate) {
    tripPackage { id price groupSize }
  }
}`),
		remove: upstream.MustParse(`
mutation DeleteTripPackage($id: ID!) { deleteTripPackage(id: $id) { tripPackage_id } }`),
	})

	register(Definition{
		Kind: Provinces,
		list: upstream.MustParse(`query ListProvinces { provinces { edges { node { id name } } } }`),
	})
	register(Definition{
		Kind: TripSubTypes,
		list: upstream.MustParse(`
query ListTripSubTypes($first: Int = 100) { tripSubTypes(first: $first) { edges { node { id type } } } }`),
	})
}
