package filenode

const (
	nodeColumns = `
		f.id, f.uuid, u.uuid, f.name, f.node_type, f.is_public, p.uuid, f.storage_path, f.created_at`

	InsertNode = `
		WITH inserted AS (
			INSERT INTO files (user_id, name, node_type, is_public, parent_id, storage_path)
			VALUES (
				(SELECT id FROM users WHERE uuid = $1),
				$2, $3, $4,
				(SELECT id FROM files WHERE uuid = $5),
				$6
			)
			RETURNING id, uuid, name, node_type, is_public, parent_id, storage_path, created_at
		)
		SELECT i.id, i.uuid, $1::uuid, i.name, i.node_type, i.is_public, p.uuid, i.storage_path, i.created_at
		FROM inserted i
		LEFT JOIN files p ON p.id = i.parent_id
	`
	SelectNodeByUUID = `
		SELECT` + nodeColumns + `
		FROM files f
		JOIN users u ON u.id = f.user_id
		LEFT JOIN files p ON p.id = f.parent_id
		WHERE f.uuid = $1
	`
	SelectOwnedNode = `
		SELECT` + nodeColumns + `
		FROM files f
		JOIN users u ON u.id = f.user_id
		LEFT JOIN files p ON p.id = f.parent_id
		WHERE f.uuid = $1 AND u.uuid = $2
	`
	SelectChildren = `
		SELECT` + nodeColumns + `
		FROM files f
		JOIN users u ON u.id = f.user_id
		LEFT JOIN files p ON p.id = f.parent_id
		WHERE u.uuid = $1
		  AND (($2::uuid IS NULL AND f.parent_id IS NULL) OR p.uuid = $2::uuid)
		ORDER BY f.id
		LIMIT 20 OFFSET ($3 * 20)
	`
	UpdateNodeVisibility = `
		WITH updated AS (
			UPDATE files f
			SET is_public = $3
			FROM users u
			WHERE f.uuid = $1 AND f.user_id = u.id AND u.uuid = $2
			RETURNING f.id, f.uuid, u.uuid AS owner_uuid, f.name, f.node_type, f.is_public, f.parent_id, f.storage_path, f.created_at
		)
		SELECT up.id, up.uuid, up.owner_uuid, up.name, up.node_type, up.is_public, p.uuid, up.storage_path, up.created_at
		FROM updated up
		LEFT JOIN files p ON p.id = up.parent_id
	`
	CountNodes = `SELECT count(*) FROM files`
)
