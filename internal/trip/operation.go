package trip

import "travel-admin/internal/upstream"

var createOneDayTrip = upstream.MustParse(`
mutation CreateOneDayTrip(
  $title: String!
  $durationHours: Int!
  $tripDescription: String!
  $provinceIds: [ID!]!
  $commonQuestionIds: [ID!]!
  $visitLocationHighlightIds: [ID!]!
  $contentIds: [ID!]!
  $thumbnailBase64: String!
  $activityIds: [ID!]!
  $program: [OneDayProgramInput!]!
  $exclusionIds: [ID!]!
  $importantInfoIds: [ID!]!
  $galleryImageIds: [ID]
  $tags: [String]
  $subTypeIds: [ID]
  $cardThumbnailBase64: String
  $offerType: String
  $price: String
  $groupSize: String
) {
  createOneDayTrip(
    title: $title
    durationHours: $durationHours
    tripDescription: $tripDescription
    provinceIds: $provinceIds
    commonQuestionIds: $commonQuestionIds
    visitLocationHighlightIds: $visitLocationHighlightIds
    contentIds: $contentIds
    thumbnailBase64: $thumbnailBase64
    activityIds: $activityIds
    program: $program
    exclusionIds: $exclusionIds
    importantInfoIds: $importantInfoIds
    galleryImageIds: $galleryImageIds
    tags: $tags
    subTypeIds: $subTypeIds
    cardThumbnailBase64: $cardThumbnailBase64
    offerType: $offerType
    price: $price
    groupSize: $groupSize
  ) {
    oneDayTrip { id title description price durationHours }
  }
}`)

// Edit documents keep every argument nullable so omitted fields stay unchanged upstream.
var editOneDayTrip = upstream.MustParse(`
mutation EditOneDayTrip(
  $id: ID!
  $title: String
  $durationHours: Int
  $tripDescription: String
  $provinceIds: [ID!]
  $commonQuestionIds: [ID!]
  $visitLocationHighlightIds: [ID!]
  $contentIds: [ID!]
  $thumbnailBase64: String
  $activityIds: [ID!]
  $program: [OneDayProgramInput]
  $exclusionIds: [ID!]
  $importantInfoIds: [ID!]
  $galleryImageIds: [ID]
  $tags: [String]
  $subTypeIds: [ID]
  $cardThumbnailBase64: String
  $offerType: String
  $price: String
  $groupSize: String
) {
  editOneDayTrip(
    id: $id
    title: $title
    durationHours: $durationHours
    tripDescription: $tripDescription
    provinceIds: $provinceIds
    commonQuestionIds: $commonQuestionIds
    visitLocationHighlightIds: $visitLocationHighlightIds
    contentIds: $contentIds
    thumbnailBase64: $thumbnailBase64
    activityIds: $activityIds
    program: $program
    exclusionIds: $exclusionIds
    importantInfoIds: $importantInfoIds
    galleryImageIds: $galleryImageIds
    tags: $tags
    subTypeIds: $subTypeIds
    cardThumbnailBase64: $cardThumbnailBase64
    offerType: $offerType
    price: $price
    groupSize: $groupSize
  ) {
    oneDayTrip { id title description price durationHours }
  }
}`)

var createMultiDayTrip = upstream.MustParse(`
mutation CreateMultiDayTrip(
  $title: String!
  $subTypeIds: [ID!]
  $durationDays: Int!
  $tripDescription: String!
  $provinceIds: [ID!]!
  $commonQuestionIds: [ID!]!
  $visitLocationHighlightIds: [ID!]!
  $contentIds: [ID!]!
  $thumbnailsBase64: [String!]!
  $placesOfResidenceIds: [ID!]!
  $condition: ConditionInput!
  $program: [ProgramInput!]!
  $galleryImageIds: [ID!]
  $exclusionIds: [ID!]
  $importantInfoIds: [ID!]
  $tags: [String!]
  $cardThumbnailBase64: String
  $offerType: String
  $price: String
  $groupSize: String
) {
  createMultiDayTrip(
    title: $title
    subTypeIds: $subTypeIds
    durationDays: $durationDays
    tripDescription: $tripDescription
    provinceIds: $provinceIds
    commonQuestionIds: $commonQuestionIds
    visitLocationHighlightIds: $visitLocationHighlightIds
    contentIds: $contentIds
    thumbnailsBase64: $thumbnailsBase64
    placesOfResidenceIds: $placesOfResidenceIds
    condition: $condition
    program: $program
    galleryImageIds: $galleryImageIds
    exclusionIds: $exclusionIds
    importantInfoIds: $importantInfoIds
    tags: $tags
    cardThumbnailBase64: $cardThumbnailBase64
    offerType: $offerType
    price: $price
    groupSize: $groupSize
  ) {
    multiDayTrip { id title description price durationHours }
  }
}`)

var editMultiDayTrip = upstream.MustParse(`
mutation EditMultiDayTrip(
  $id: ID!
  $title: String
  $subTypeIds: [ID!]
  $durationDays: Int
  $tripDescription: String
  $provinceIds: [ID!]
  $commonQuestionIds: [ID!]
  $visitLocationHighlightIds: [ID!]
  $contentIds: [ID!]
  $tags: [String!]
  $galleryImageIds: [ID!]
  $exclusionIds: [ID!]
  $importantInfoIds: [ID!]
  $placesOfResidenceIds: [ID!]
  $thumbnailsBase64: [String!]
  $condition: ConditionInput
  $program: [ProgramInput]
  $cardThumbnailBase64: String
  $offerType: String
  $price: String
  $groupSize: String
) {
  editMultiDayTrip(
    id: $id
    title: $title
    subTypeIds: $subTypeIds
    durationDays: $durationDays
    tripDescription: $tripDescription
    provinceIds: $provinceIds
    commonQuestionIds: $commonQuestionIds
    visitLocationHighlightIds: $visitLocationHighlightIds
    contentIds: $contentIds
    tags: $tags
    galleryImageIds: $galleryImageIds
    exclusionIds: $exclusionIds
    importantInfoIds: $importantInfoIds
    placesOfResidenceIds: $placesOfResidenceIds
    thumbnailsBase64: $thumbnailsBase64
    condition: $condition
    program: $program
    cardThumbnailBase64: $cardThumbnailBase64
    offerType: $offerType
    price: $price
    groupSize: $groupSize
  ) {
    multiDayTrip { id title description price durationHours }
  }
}`)

var deleteTrip = upstream.MustParse(`
mutation DeleteTrip($id: ID!) {
  deleteTrip(id: $id) { tripId }
}`)

var listTrips = upstream.MustParse(`
query ListTrips($lengthType: TripLengthTypeEnum) {
  trips(lengthType: $lengthType) {
    edges {
      node {
        __typename
        ... on OneDayTripNode { id title description price durationHours lengthType }
        ... on MultiDayTripNode { id title description price durationHours lengthType }
      }
    }
  }
}`)

var getTrip = upstream.MustParse(`
query GetTrip($id: ID!) {
  trip(id: $id) {
    __typename
    ... on OneDayTripNode {
      id title description durationHours price groupSize offerType tags lengthType
      thumbnail cardThumbnail
      provinces { id name }
      commonQuestions { id question }
      visitLocationHighlights { id title }
      content: contents { id title }
      activities { id title }
      exclusions { id title }
      importantInfos { id title }
      galleryImages { id title }
      subTypes { id type }
      programSections {
        order
        destination { id title }
        subDestinations(first: 50) { edges { node { id title } } }
      }
    }
    ... on MultiDayTripNode {
      id title description durationDays price groupSize offerType tags lengthType
      conditionText cardThumbnail
      thumbnails { id image }
      provinces { id name }
      commonQuestions { id question }
      visitLocationHighlights { id title }
      conditions { id title }
      content { id title }
      placesOfResidence { id title }
      exclusions { id title }
      importantInfos { id title }
      galleryImages { id title }
      subTypes { id type }
      dayPrograms {
        dayNumber title subTitle description residenceName
        destination { id title }
        activities { edges { node { id title } } }
        subDestinations { id title }
        visitHighlights { ... on SubDestinationNode { id title } }
      }
    }
  }
}`)
