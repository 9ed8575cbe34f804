package store

const (
	createUser = `INSERT INTO users (login, name, password_hash, is_staff, is_active)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, login, name, password_hash, is_staff, is_active, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, is_staff, is_active, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, name, password_hash, is_staff, is_active, created_at
    FROM users
    WHERE user_id = $1;`

	updateUser = `UPDATE users
    SET name = $1, is_staff = $2, is_active = $3
    WHERE user_id = $4
    RETURNING user_id, login, name, password_hash, is_staff, is_active, created_at;`

	addUserToGroup = `INSERT INTO user_groups (user_id, group_id)
    VALUES ($1, $2);`

	removeUserFromGroup = `DELETE FROM user_groups
    WHERE user_id = $1 AND group_id = $2;`

	findGroupsByUserID = `SELECT g.group_id, g.name, g.description, g.created_at
    FROM groups g
    JOIN user_groups ug ON ug.group_id = g.group_id
    WHERE ug.user_id = $1
    ORDER BY g.name;`

	createGroup = `INSERT INTO groups (name, description)
    VALUES ($1, $2)
    RETURNING group_id, name, description, created_at;`

	findGroupByName = `SELECT group_id, name, description, created_at
    FROM groups
    WHERE name = $1;`

	listGroups = `SELECT group_id, name, description, created_at
    FROM groups
    ORDER BY name;`

	createSession = `INSERT INTO sessions (user_id, token_hash, user_agent, ip_address, last_seen_at, expires_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING session_id, user_id, token_hash, user_agent, ip_address, created_at, last_seen_at, expires_at, revoked_at;`

	findSessionByTokenHash = `SELECT session_id, user_id, token_hash, user_agent, ip_address, created_at, last_seen_at, expires_at, revoked_at
    FROM sessions
    WHERE token_hash = $1;`

	touchSession = `UPDATE sessions
    SET last_seen_at = $1
    WHERE session_id = $2;`

	revokeSession = `UPDATE sessions
    SET revoked_at = $1
    WHERE session_id = $2 AND revoked_at IS NULL;`

	deleteExpiredSessions = `DELETE FROM sessions
    WHERE expires_at < $1;`
)
