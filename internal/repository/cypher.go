package repository

const listSectionsCypher = `
MATCH (up:Station)-[s:SECTION]->(down:Station)
RETURN s.lineId AS lineId,
	up.id AS upStationId,
	down.id AS downStationId,
	s.distance AS distance
ORDER BY lineId, upStationId, downStationId
`

const findStationsCypher = `
MATCH (s:Station)
WHERE s.id IN $ids
RETURN s.id AS id, s.name AS name
ORDER BY id
`

const upsertStationCypher = `
MERGE (s:Station {id: $id})
SET s.name = $name
RETURN s.id AS id
`

const upsertSectionCypher = `
MATCH (up:Station {id: $upStationId})
MATCH (down:Station {id: $downStationId})
MERGE (up)-[s:SECTION {lineId: $lineId}]->(down)
SET s.distance = $distance
RETURN s.lineId AS lineId
`
